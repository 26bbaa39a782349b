package filestorage

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

const driveCredentials = `{"installed":{"client_id":"id","client_secret":"secret","redirect_uris":["http://localhost"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`

func TestNewGoogleDriveStorageMissingCredentials(t *testing.T) {
	if _, err := NewGoogleDriveStorage("does-not-exist.json", "token.json"); err == nil {
		t.Errorf("expected an error for a missing credentials file, got nil")
	}
}

func TestNewGoogleDriveStorageBadToken(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "credentials.json")
	if err := ioutil.WriteFile(credentials, []byte(driveCredentials), 0644); err != nil {
		t.Fatalf("expected error nil when writing the credentials file, got %q", err)
	}
	token := filepath.Join(dir, "token.json")
	if err := ioutil.WriteFile(token, []byte("not a token"), 0644); err != nil {
		t.Fatalf("expected error nil when writing the token file, got %q", err)
	}
	if _, err := NewGoogleDriveStorage(credentials, token); err == nil {
		t.Errorf("expected an error for an unparseable oauth token, got nil")
	}
}
