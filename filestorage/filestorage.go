package filestorage

// FileStorage is where a run's output files end up. The bucket argument
// is backend specific: a GCS or S3 bucket name, a Google Drive folder
// ID or a local directory.
type FileStorage interface {
	// Upload saves the given bytes under bucket/fileName and returns
	// the location of the stored file.
	Upload(b []byte, bucket, fileName string) (string, error)

	// FileExists checks if file exists. If file exists
	// it returns true, else false
	FileExists(bucket, fileName string) bool
}
