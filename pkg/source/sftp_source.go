package source

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

const sftpScheme = "sftp"

func init() {
	register(sftpScheme, func(uri string) (Source, error) {
		parsed, err := url.Parse(uri)
		if err != nil {
			return nil, err
		}

		port := 22
		if p := parsed.Port(); p != "" {
			if n, err := strconv.Atoi(p); err == nil {
				port = n
			}
		}

		username, password := "", ""
		if parsed.User != nil {
			username = parsed.User.Username()
			password, _ = parsed.User.Password()
		}

		config := &ssh.ClientConfig{
			User:            username,
			Auth:            []ssh.AuthMethod{ssh.Password(password)},
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		}

		conn, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", parsed.Hostname(), port), config)
		if err != nil {
			return nil, fmt.Errorf("source: sftp dial: %w", err)
		}
		client, err := sftp.NewClient(conn, sftp.UseConcurrentReads(true))
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("source: sftp client: %w", err)
		}

		return &sftpSource{client: client, conn: conn, basePath: parsed.Path}, nil
	})
}

type sftpSource struct {
	client   *sftp.Client
	conn     *ssh.Client
	basePath string
}

func (s *sftpSource) formatPath(remotePath string) string {
	p := remotePath
	if s.basePath != "" {
		p = s.basePath + "/" + strings.TrimLeft(remotePath, "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (s *sftpSource) Fetch(remotePath string, size int64) ([]byte, error) {
	f, err := s.client.Open(s.formatPath(remotePath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if size <= 0 {
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		size = st.Size()
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *sftpSource) HasFile(remotePath string) bool {
	_, err := s.client.Stat(s.formatPath(remotePath))
	return err == nil
}

func (s *sftpSource) Scheme() string { return sftpScheme }

func (s *sftpSource) Close() error {
	s.client.Close()
	return s.conn.Close()
}
