package sftpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const dialTimeout = 20 * time.Second

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	KnownHostsPath        string
	InsecureIgnoreHostKey bool
}

func (cfg Config) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if cfg.KnownHostsPath == "" {
		return nil, errors.New("sftp: SFTP_KNOWN_HOSTS is required unless SFTP_INSECURE_IGNORE_HOSTKEY is set")
	}
	cb, err := knownhosts.New(cfg.KnownHostsPath)
	if err != nil {
		return nil, errors.Wrap(err, "sftp: known_hosts")
	}
	return cb, nil
}

// UploadFile copies localPath to RemoteDir/remoteFileName on the server,
// creating RemoteDir when missing.
func UploadFile(ctx context.Context, cfg Config, localPath string, remoteFileName string) error {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return errors.New("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}

	src, err := os.Open(localPath)
	if err != nil {
		return errors.Wrap(err, "sftp: open local file")
	}
	defer src.Close()

	cb, err := cfg.hostKeyCallback()
	if err != nil {
		return err
	}

	sshClient, err := dial(ctx, net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)), &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         dialTimeout,
	})
	if err != nil {
		return err
	}
	defer sshClient.Close()

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		return errors.Wrap(err, "sftp: new client")
	}
	defer sftpCli.Close()

	if err := sftpCli.MkdirAll(cfg.RemoteDir); err != nil {
		return errors.Wrapf(err, "sftp: mkdir %s", cfg.RemoteDir)
	}

	remotePath := path.Join(cfg.RemoteDir, remoteFileName)
	dst, err := sftpCli.Create(remotePath)
	if err != nil {
		return errors.Wrap(err, "sftp: create remote file")
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return errors.Wrap(err, "sftp: upload copy")
	}

	log.WithFields(log.Fields{
		"host":  cfg.Host,
		"path":  remotePath,
		"bytes": n,
	}).Info("file uploaded")
	return nil
}

// dial connects and completes the SSH handshake, giving up when ctx is done.
func dial(ctx context.Context, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	d := net.Dialer{Timeout: cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "sftp: dial canceled")
		}
		return nil, errors.Wrap(err, "sftp: dial error")
	}

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "sftp: dial canceled")
		}
		return nil, errors.Wrap(err, "sftp: dial error")
	}
	return ssh.NewClient(c, chans, reqs), nil
}
