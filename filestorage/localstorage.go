package filestorage

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

type localStorage struct {
}

// NewLocalStorage returns a new local storage instance
func NewLocalStorage() FileStorage {
	return &localStorage{}
}

// Upload writes the given bytes under the bucket directory, creating it
// when needed, and returns the written path.
func (ls *localStorage) Upload(b []byte, bucket, fileName string) (string, error) {
	_, err := os.Stat(bucket) // checking if bucket exists
	if os.IsNotExist(err) {
		err := os.MkdirAll(bucket, 0755)
		if err != nil {
			return "", fmt.Errorf("failed to create directory %s, error %q", bucket, err)
		}
	}
	name := filepath.Join(bucket, fileName)
	if err := ioutil.WriteFile(name, b, 0644); err != nil {
		return "", fmt.Errorf("failed to save file %s on path %s, error %q", fileName, name, err)
	}
	return name, nil
}

// FileExists checks if file exists. If file exists
// it returns true, else false
func (ls *localStorage) FileExists(bucket, fileName string) bool {
	_, err := os.Stat(filepath.Join(bucket, fileName))
	return err == nil
}
