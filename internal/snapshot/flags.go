package snapshot

import "flag"

// FlagNames lists the flags RegisterFlags defines, for flagx.FilterArgs.
var FlagNames = []string{"-s3-bucket", "-s3-prefix", "-s3-region", "-s3-endpoint"}

// RegisterFlags binds the bucket location to fs. Credentials are taken
// from the config file or the environment only.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Bucket, "s3-bucket", o.Bucket, "snapshot bucket")
	fs.StringVar(&o.Prefix, "s3-prefix", o.Prefix, "snapshot key prefix")
	fs.StringVar(&o.Region, "s3-region", o.Region, "S3 region")
	fs.StringVar(&o.Endpoint, "s3-endpoint", o.Endpoint, "S3 endpoint, empty for AWS")
}
