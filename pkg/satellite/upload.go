package satellite

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cavaliergopher/rpm"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/dstraub/satellite-plugin/pkg/nvr"
	satrpc "github.com/dstraub/satellite-plugin/pkg/rpc"
)

// packageMetadata is what ends up in the X-RHN-Upload-Package-* headers.
type packageMetadata struct {
	Name    string
	Version string
	Release string
	Arch    string
}

// Push streams an RPM file to the PACKAGE-PUSH endpoint and attaches the
// resulting package to the channel. The package is identified on the server
// by the NVR parsed from the filename.
func (s *Session) Push(path, channel string) (nvr.NVR, error) {
	restore := s.suspendOneShot()
	defer restore()

	parsed, err := nvr.Parse(filepath.Base(path))
	if err != nil {
		return nvr.NVR{}, err
	}

	if err = s.upload(path, parsed); err != nil {
		return nvr.NVR{}, err
	}
	s.log.Info("upload was successful")

	pkg, err := s.FindPackage(parsed)
	if err != nil {
		return nvr.NVR{}, err
	}
	s.log.Infof("package-id: %d", pkg.ID)

	added, err := s.AddPackage(channel, pkg.ID)
	if err != nil {
		return nvr.NVR{}, err
	}
	if added {
		s.log.Infof("push to '%s' was successful", channel)
	} else {
		s.log.Infof("push to '%s' was not successful", channel)
	}

	return parsed, nil
}

func (s *Session) upload(path string, parsed nvr.NVR) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening package file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("inspecting package file: %w", err)
	}

	checksum, err := fileChecksum(file)
	if err != nil {
		return fmt.Errorf("computing package checksum: %w", err)
	}

	metadata := s.uploadMetadata(path, parsed)

	s.log.Infof("upload %s", path)

	bar := progressbar.DefaultBytesSilent(info.Size())
	body := io.TeeReader(file, bar)

	req, err := http.NewRequest(http.MethodPost, s.config.PushURL(), body)
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	// An exact length keeps the transfer un-chunked, which the Satellite
	// upload handler requires.
	req.ContentLength = info.Size()

	req.Header.Set("Content-Type", "application/x-rpm")
	req.Header.Set("X-RHN-Upload-Auth-Session", s.token)
	req.Header.Set("X-RHN-Upload-File-Checksum-Type", "md5")
	req.Header.Set("X-RHN-Upload-File-Checksum", checksum)
	req.Header.Set("X-RHN-Upload-Force", "0")
	req.Header.Set("X-RHN-Upload-Package-Arch", metadata.Arch)
	req.Header.Set("X-RHN-Upload-Package-Name", metadata.Name)
	req.Header.Set("X-RHN-Upload-Package-Release", metadata.Release)
	req.Header.Set("X-RHN-Upload-Package-Version", metadata.Version)
	req.Header.Set("X-RHN-Upload-Packaging", "rpm")

	client := &http.Client{}
	if s.config.IsSSL() {
		client.Transport = satrpc.InsecureTransport()
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("uploading package: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uploadRejected(resp)
	}
	return nil
}

// uploadMetadata decides what goes into the package metadata headers: the
// RPM header when the file has one, the filename NVR otherwise. The legacy
// mode reproduces the constants the original plugin always sent.
func (s *Session) uploadMetadata(path string, parsed nvr.NVR) packageMetadata {
	if s.config.LegacyUploadHeaders {
		return packageMetadata{Name: "sample-app", Version: "1.0", Release: "1", Arch: "noarch"}
	}

	metadata := packageMetadata{
		Name:    parsed.Name,
		Version: parsed.Version,
		Release: parsed.Release,
		Arch:    "noarch",
	}

	pkg, err := rpm.Open(path)
	if err != nil {
		zap.S().Debugf("No readable RPM header in '%s', using filename metadata: %s", path, err)
		return metadata
	}

	metadata.Name = pkg.Name()
	metadata.Version = pkg.Version()
	metadata.Release = pkg.Release()
	if arch := pkg.Architecture(); arch != "" {
		metadata.Arch = arch
	}
	return metadata
}

func uploadRejected(resp *http.Response) error {
	rejection := &UploadRejectedError{StatusCode: resp.StatusCode}

	if header := resp.Header.Get("X-RHN-Upload-Error-String"); header != "" {
		if decoded, err := base64.StdEncoding.DecodeString(header); err == nil {
			rejection.ServerMessage = string(decoded)
		} else {
			rejection.ServerMessage = header
		}
	}

	if body, err := io.ReadAll(resp.Body); err == nil {
		rejection.Body = string(body)
	}

	return rejection
}

func fileChecksum(file *os.File) (string, error) {
	hash := md5.New() // #nosec G401 -- checksum type dictated by the upload protocol
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
