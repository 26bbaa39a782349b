package main

import (
	"archive/zip"
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/sansad-info/parsers/filestorage"
	"github.com/sansad-info/parsers/pipeline"
)

func main() {
	source := flag.String("source", "", "URL of a zip with report files") // can be a path using the file:// protocol or http://
	localDir := flag.String("localDir", "", "directory where the unzipped report files go")
	year := flag.Int("year", 0, "election year to process")
	dataDir := flag.String("dataDir", "", "directory holding every year's report files, processes all years")
	outDir := flag.String("outDir", "", "where output files are stored") // if for GCS pass gs://${BUCKET}, if for local pass the local path
	credentials := flag.String("credentials", "", "Google Drive credentials key file")
	oauthToken := flag.String("OAuthToken", "", "file with the Google Drive oauth token")
	flag.Parse()
	if *source != "" {
		if *localDir == "" {
			log.Fatal("inform the local directory")
		}
		if err := collect(*source, *localDir); err != nil {
			log.Fatalf("failed to run collection, error %q", err)
		}
		return
	}
	if *outDir == "" {
		log.Fatal("inform the output location")
	}
	storage, bucket := storageFor(*outDir, *credentials, *oauthToken)
	if *dataDir != "" {
		jobs := pipeline.DefaultJobs(*dataDir)
		ordered := make([]pipeline.Job, 0, len(jobs))
		for _, y := range []int{2004, 2009, 2014, 2019, 2024} {
			ordered = append(ordered, jobs[y])
		}
		outcomes := pipeline.RunAll(ordered, storage, bucket)
		for _, outcome := range outcomes {
			report(outcome)
		}
		return
	}
	if *year == 0 {
		log.Fatal("inform the year to process")
	}
	if *localDir == "" {
		log.Fatal("inform the local directory holding the report files")
	}
	job, ok := pipeline.DefaultJobs(*localDir)[*year]
	if !ok {
		log.Fatalf("no job configured for year %d", *year)
	}
	outcome, err := pipeline.Run(job, storage, bucket)
	if err != nil {
		log.Fatalf("failed to process year %d, error %q", *year, err)
	}
	report(outcome)
}

func report(outcome *pipeline.Outcome) {
	diag := outcome.Diagnostics
	log.Printf("year %d: %d records, %d candidates merged, stored at %s\n", outcome.Year, outcome.Records, diag.MergedCandidates, outcome.StoredAt)
	if diag.UnresolvedRows > 0 {
		log.Printf("year %d: %d unresolved rows, samples %v\n", outcome.Year, diag.UnresolvedRows, diag.UnresolvedSamples)
	}
	if len(diag.FuzzyResolved) > 0 {
		log.Printf("year %d: fuzzy matches %v\n", outcome.Year, diag.FuzzyResolved)
	}
	if len(diag.NoCandidateIDs) > 0 {
		log.Printf("year %d: constituencies without candidates %v\n", outcome.Year, diag.NoCandidateIDs)
	}
	if len(diag.TiedConstituencies) > 0 {
		log.Printf("year %d: tied constituencies %v\n", outcome.Year, diag.TiedConstituencies)
	}
}

// storageFor picks the storage backend from the output location: a
// gs:// prefix selects GCS, Drive credential files select Google Drive
// with outDir as the folder ID, anything else is a local path.
func storageFor(outDir, credentials, oauthToken string) (filestorage.FileStorage, string) {
	if strings.HasPrefix(outDir, "gs://") {
		return filestorage.NewGCSClient(), strings.TrimPrefix(outDir, "gs://")
	}
	if credentials != "" && oauthToken != "" {
		storage, err := filestorage.NewGoogleDriveStorage(credentials, oauthToken)
		if err != nil {
			log.Fatalf("failed to create Google Drive client, error %q", err)
		}
		return storage, outDir
	}
	return filestorage.NewLocalStorage(), outDir
}

func collect(source, outDir string) error {
	tempFile := new(bytes.Buffer)
	bytes, err := downloadFile(source, tempFile)
	if err != nil {
		return fmt.Errorf("failed to fetch file with URL %s, error %q", source, err)
	}
	if _, err := unzipDownloadedFiles(bytes, outDir); err != nil {
		return fmt.Errorf("failed to unzip downloaded files, error %q", err)
	}
	return nil
}

// download a file and writes on the given writer
func downloadFile(url string, w io.Writer) ([]byte, error) {
	var res *http.Response
	var err error
	t := &http.Transport{}
	c := &http.Client{Transport: t}
	var length int
	tempBuffer := new(bytes.Buffer)
	if strings.HasPrefix(url, "http") {
		res, err = c.Get(url)
		if err != nil {
			return nil, fmt.Errorf("problem downloading the files of url %s, error: %q", url, err)
		}
		contentLength := res.Header.Get("content-length")
		length, err = strconv.Atoi(contentLength)
		if err != nil {
			return nil, fmt.Errorf("failed to get the size of the file to download, error %q", err)
		}
	} else if strings.HasPrefix(url, "file") {
		t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
		res, err = c.Get(url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch files of the system with path %s, error: %q", url, err)
		}
		if _, err := io.Copy(tempBuffer, res.Body); err != nil {
			return nil, fmt.Errorf("failed to copy the request bytes, error %q", err)
		}
	} else {
		return nil, fmt.Errorf("protocol %s not supported", url[0:5])
	}
	defer res.Body.Close()
	if strings.HasPrefix(url, "http") {
		reader := io.LimitReader(res.Body, int64(length))
		bar := pb.Full.Start64(int64(length))
		barReader := bar.NewProxyReader(reader)
		if _, err := io.Copy(tempBuffer, barReader); err != nil {
			return nil, fmt.Errorf("failed to copy bytes of the bar reader, error %q", err)
		}
		bar.Finish()
	}
	bodyAsBytes, err := ioutil.ReadAll(tempBuffer)
	if err != nil {
		return nil, fmt.Errorf("failed to read the bytes of the request response, error: %q", err)
	}
	_, err = w.Write(bodyAsBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to write bytes on the file, error: %q", err)
	}
	return bodyAsBytes, nil
}

// It unzips downloaded .zip on a temporary directory
// and returns the path of unziped files with report suffixes
func unzipDownloadedFiles(buf []byte, unzipDestination string) ([]string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, f := range zipReader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file %s, error %q", f.Name, err)
		}
		path := filepath.Join(unzipDestination, f.Name)
		if strings.HasSuffix(path, ".xlsx") || strings.HasSuffix(path, ".txt") {
			paths = append(paths, path)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, f.Mode()); err != nil {
				return nil, fmt.Errorf("failed to create directory with name %s, error %q", path, err)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(path), f.Mode()); err != nil {
				return nil, fmt.Errorf("failed to create directory with name %s, error %q", path, err)
			}
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
			if err != nil {
				return nil, fmt.Errorf("failed to open file %s, error %q", path, err)
			}
			if _, err = io.Copy(f, rc); err != nil {
				return nil, fmt.Errorf("failed to copy content to temporary file %s", path)
			}
			if err := f.Close(); err != nil {
				return nil, fmt.Errorf("failed to close file created on temporary directory, error %q", err)
			}
		}
		if err := rc.Close(); err != nil {
			return nil, fmt.Errorf("failed to close the reader of a file inside the zip, error %q", err)
		}
	}
	return paths, nil
}
