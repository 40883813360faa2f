package book

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

const (
	epubContainerPath = "META-INF/container.xml"
	xhtmlMediaType    = "application/xhtml+xml"
)

var errNoRootFile = errors.New("container.xml lists no package document")

type epubContainer struct {
	RootFiles []epubRootFile `xml:"rootfiles>rootfile"`
}

type epubRootFile struct {
	FullPath string `xml:"full-path,attr"`
}

type epubPackage struct {
	Manifest struct {
		Items []epubItem `xml:"item"`
	} `xml:"manifest"`
}

type epubItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// extractEPUB returns the stripped text of every XHTML manifest item, in manifest order.
// Segments follow the manifest, not the spine, so items missing from the spine are
// still returned and reading-order reshuffles in the spine do not reorder them.
func extractEPUB(filePath string) (Content, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return Content{}, err
	}
	defer archive.Close()

	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		files[f.Name] = f
	}

	var container epubContainer
	if err := decodeZipXML(files, epubContainerPath, &container); err != nil {
		return Content{}, err
	}
	if len(container.RootFiles) == 0 || container.RootFiles[0].FullPath == "" {
		return Content{}, errNoRootFile
	}

	opfPath := container.RootFiles[0].FullPath
	var pkg epubPackage
	if err := decodeZipXML(files, opfPath, &pkg); err != nil {
		return Content{}, err
	}

	baseDir := path.Dir(opfPath)
	var chapters []string
	for _, item := range pkg.Manifest.Items {
		if item.MediaType != xhtmlMediaType {
			continue
		}

		href, err := url.PathUnescape(item.Href)
		if err != nil {
			href = item.Href
		}

		data, err := readZipFile(files, path.Join(baseDir, href))
		if err != nil {
			return Content{}, fmt.Errorf("item %s: %w", item.ID, err)
		}
		if !utf8.Valid(data) {
			return Content{}, fmt.Errorf("item %s: %w", item.ID, errInvalidUTF8)
		}

		if text := stripMarkup(string(data)); text != "" {
			chapters = append(chapters, text)
		}
	}

	return SegmentedContent(chapters), nil
}

func readZipFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%s: file not found in archive", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return data, nil
}

func decodeZipXML(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("%s: file not found in archive", name)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
