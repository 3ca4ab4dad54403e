package resources

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"
)

type ResourceFlag uint8

// WriteCounter counts the number of bytes written to it, and every 10 seconds,
// it logs a message reporting the number of bytes written so far.
type WriteCounter struct {
	Total    uint64
	Last     time.Time
	Reported bool
	Path     string
	Size     uint64
	Logger   *zap.Logger
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		if wc.Logger != nil {
			wc.Logger.Info(fmt.Sprintf("Downloading %s... %s / %s completed.",
				wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size)))
		}
	}
	return n, nil
}

// Enumeration of resource flags that indicate what the resolver should do
// with the resource.
const (
	RESOURCE_REQUIRED ResourceFlag = 1 << iota
	RESOURCE_OPTIONAL
)

const (
	RulesFile        = "rules.json"
	TranslationsFile = "translations.json"
)

type ResourceEntryDefs map[string]ResourceFlag
type ResourceEntry struct {
	file   interface{}
	mapped mmap.MMap
	Data   *[]byte
}

type Resources map[string]ResourceEntry

func (rsrcs *Resources) Cleanup() {
	for _, rsrc := range *rsrcs {
		if rsrc.mapped != nil {
			_ = rsrc.mapped.Unmap()
		}
		switch t := rsrc.file.(type) {
		case *os.File:
			t.Close()
		case fs.File:
			t.Close()
		}
	}
}

// GetResourceEntries
// Returns the resource files of a rule set and whether each is required.
func GetResourceEntries() ResourceEntryDefs {
	return ResourceEntryDefs{
		RulesFile:        RESOURCE_REQUIRED,
		TranslationsFile: RESOURCE_OPTIONAL,
	}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// Fetch
// Given a base URI and a resource name, determines if the resource is local
// or remote, and returns a ReadCloser for it.
func Fetch(uri string, rsrc string) (io.ReadCloser, error) {
	if isValidUrl(uri) {
		return FetchHTTP(uri, rsrc)
	}
	handle, fileErr := os.Open(path.Join(uri, rsrc))
	if fileErr != nil {
		return nil, fmt.Errorf("error opening %s/%s: %w", uri, rsrc, fileErr)
	}
	return handle, nil
}

// Size
// Given a base URI and a resource name, determine the size of the resource.
func Size(uri string, rsrc string) (uint, error) {
	if isValidUrl(uri) {
		return SizeHTTP(uri, rsrc)
	}
	fsz, err := os.Stat(path.Join(uri, rsrc))
	if err != nil {
		return 0, err
	}
	return uint(fsz.Size()), nil
}

// AddEntry
// Add a resource to the Resources map, opening it as a mmap.Map.
func (rsrcs *Resources) AddEntry(name string, file *os.File) error {
	mapped, fileMmap, mmapErr := readMmap(file)
	if mmapErr != nil {
		return fmt.Errorf("error trying to mmap file: %w", mmapErr)
	}
	(*rsrcs)[name] = ResourceEntry{file, mapped, fileMmap}
	return nil
}

func resolveEmbedded(id string) *Resources {
	resources := make(Resources, 0)
	for file := range GetResourceEntries() {
		if entry := GetEmbeddedResource(id + "/" + file); entry != nil {
			resources[file] = *entry
		}
	}
	return &resources
}

// download copies a remote resource into dir and returns the open file.
func download(uri, file, dir string, size uint,
	logger *zap.Logger) (*os.File, error) {
	rsrcReader, rsrcErr := Fetch(uri, file)
	if rsrcErr != nil {
		return nil, rsrcErr
	}
	defer rsrcReader.Close()
	rsrcFile, rsrcFileErr := os.OpenFile(path.Join(dir, file),
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if rsrcFileErr != nil {
		return nil, fmt.Errorf("error opening '%s' for write: %w", file,
			rsrcFileErr)
	}
	counter := &WriteCounter{
		Last:   time.Now(),
		Path:   fmt.Sprintf("%s/%s", uri, file),
		Size:   uint64(size),
		Logger: logger,
	}
	bytesDownloaded, ioErr := io.Copy(rsrcFile,
		io.TeeReader(rsrcReader, counter))
	if ioErr != nil {
		rsrcFile.Close()
		return nil, fmt.Errorf("error downloading '%s': %w", file, ioErr)
	}
	logger.Info("downloaded resource",
		zap.String("uri", uri), zap.String("file", file),
		zap.String("size", humanize.Bytes(uint64(bytesDownloaded))))
	return rsrcFile, nil
}

// ResolveResources
// Resolves the rule set files at uri: an embedded rule set id (an empty
// uri means the default one), a local directory, or an HTTP(S) base URL.
// Local files are mmapped; remote files are downloaded to a temporary
// directory first. A missing required file is an error.
func ResolveResources(uri string, logger *zap.Logger) (*Resources, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if uri == "" {
		uri = DefaultId
	}
	if _, embeddedErr := EmbeddedDirExists(uri); embeddedErr == nil {
		logger.Debug("using embedded rule set", zap.String("id", uri))
		return resolveEmbedded(uri), nil
	}

	remote := isValidUrl(uri)
	var dir string
	if remote {
		tmpDir, dirErr := os.MkdirTemp("", "resources")
		if dirErr != nil {
			return nil, dirErr
		}
		defer os.RemoveAll(tmpDir)
		dir = tmpDir
	}

	foundResources := make(Resources, 0)
	for file, flag := range GetResourceEntries() {
		rsrcSize, rsrcSizeErr := Size(uri, file)
		if rsrcSizeErr != nil {
			if flag&RESOURCE_REQUIRED != 0 {
				foundResources.Cleanup()
				return nil, fmt.Errorf(
					"cannot retrieve required `%s` from `%s`: %w",
					file, uri, rsrcSizeErr)
			}
			logger.Debug("optional resource not found",
				zap.String("uri", uri), zap.String("file", file))
			continue
		}
		var rsrcFile *os.File
		if remote {
			downloaded, dlErr := download(uri, file, dir, rsrcSize, logger)
			if dlErr != nil {
				foundResources.Cleanup()
				return nil, fmt.Errorf("cannot retrieve `%s` from `%s`: %w",
					file, uri, dlErr)
			}
			rsrcFile = downloaded
		} else {
			openFile, openErr := os.Open(path.Join(uri, file))
			if openErr != nil {
				foundResources.Cleanup()
				return nil, openErr
			}
			rsrcFile = openFile
		}
		if mmapErr := foundResources.AddEntry(file, rsrcFile); mmapErr != nil {
			rsrcFile.Close()
			foundResources.Cleanup()
			return nil, mmapErr
		}
		logger.Debug("resolved resource",
			zap.String("file", file),
			zap.String("size", humanize.Bytes(uint64(rsrcSize))))
	}
	if len(foundResources) == 0 {
		return nil, errors.New("no resources found at " + uri)
	}
	return &foundResources, nil
}
