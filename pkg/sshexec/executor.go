package sshexec

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/log"
)

const defaultPort = 22

// Executor runs scripts on remote hosts over SSH, as the direct alternative
// to scheduling them through the Satellite API.
type Executor struct {
	user          string
	password      string
	keyPath       string
	keyPassphrase string
	port          int
	log           *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) *Executor {
	return &Executor{
		user:          cfg.SSHUser,
		password:      cfg.SSHPassword,
		keyPath:       cfg.SSHKeyPath,
		keyPassphrase: cfg.SSHKeyPassphrase,
		port:          defaultPort,
		log:           logger,
	}
}

// Run executes the script on the host and returns its exit status. Output
// is mirrored to the log sink. A status of -1 means the script could not be
// executed at all. Connection and session are torn down on every exit path.
func (e *Executor) Run(host, script string) int {
	e.log.SSHf("connect %s", host)

	clientConfig, err := e.clientConfig()
	if err != nil {
		e.log.SSHf("Exception: %s", err)
		return -1
	}

	client, err := ssh.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(e.port)), clientConfig)
	if err != nil {
		e.log.SSHf("Exception: %s", err)
		return -1
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		e.log.SSHf("Exception: %s", err)
		return -1
	}
	defer session.Close()

	session.Stdout = e.log.Raw()
	session.Stderr = e.log.Raw()

	e.log.SSH("execute script")

	status := 0
	if err = session.Run(script); err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			status = exitErr.ExitStatus()
		} else {
			e.log.SSHf("Exception: %s", err)
			return -1
		}
	}

	e.log.SSHf("exit-status: %d", status)
	return status
}

// clientConfig builds the connection settings: key authentication when a
// key path is configured, password authentication otherwise. Host keys are
// not verified; Satellite-managed hosts are provisioned without known_hosts
// distribution, mirroring StrictHostKeyChecking=no.
func (e *Executor) clientConfig() (*ssh.ClientConfig, error) {
	auth, err := e.authMethods()
	if err != nil {
		return nil, err
	}

	return &ssh.ClientConfig{
		User:            e.user,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
	}, nil
}

func (e *Executor) authMethods() ([]ssh.AuthMethod, error) {
	if e.keyPath == "" {
		return []ssh.AuthMethod{ssh.Password(e.password)}, nil
	}

	key, err := os.ReadFile(e.keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading SSH key '%s': %w", e.keyPath, err)
	}

	var signer ssh.Signer
	if e.keyPassphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(key, []byte(e.keyPassphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(key)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing SSH key '%s': %w", e.keyPath, err)
	}

	zap.S().Debugf("Using SSH key '%s' for user '%s'", e.keyPath, e.user)
	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}
