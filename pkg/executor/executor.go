/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// DdcSshExecutor is the channel used by deploy to upload the
// project archive and to run the remote compose commands.
type DdcSshExecutor struct {
	Endpoint string
	Host     string
	// Ssh connection protocol. Valid values: tcp,tcp4,tcp6,unix
	ConnProtocol      string
	Port              int
	ShowCmdsOutput    bool
	RuntimeCmdsOutput bool

	User           string
	Pass           string
	PrivateKey     string
	PrivateKeyPass string
	UseAgent       bool

	Client     *ssh.Client
	SftpClient *sftp.Client

	Sessions map[string]*DdcSshSession

	Emitter DdcExecutorEmitter

	agentConn net.Conn
}

type DdcSshSession struct {
	*ssh.Session
	Name string
}

func NewDdcSshSession(name string, s *ssh.Session) *DdcSshSession {
	return &DdcSshSession{
		Session: s,
		Name:    name,
	}
}

func (s *DdcSshSession) GetName() string { return s.Name }

func NewDdcSshExecutor(endpoint, host string, port int) *DdcSshExecutor {
	return &DdcSshExecutor{
		Endpoint:          endpoint,
		Host:              host,
		Port:              port,
		ConnProtocol:      "tcp",
		ShowCmdsOutput:    true,
		RuntimeCmdsOutput: true,
		Client:            nil,
		SftpClient:        nil,
		Sessions:          make(map[string]*DdcSshSession, 0),
		Emitter:           NewDdcEmitter(),
	}
}

func NewDdcSshExecutorFromRemote(rname string, r *specs.Remote) (*DdcSshExecutor, error) {
	r.Sanitize()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	ans := NewDdcSshExecutor(rname, r.Host, r.Port)
	ans.ConnProtocol = r.Protocol
	ans.User = r.User

	switch r.AuthMethod {
	case specs.AuthMethodPassword:
		ans.Pass = r.Pass
	case specs.AuthMethodAgent:
		ans.UseAgent = true
	default:
		ans.PrivateKeyPass = r.PrivateKeyPass
		data, err := os.ReadFile(r.PrivateKeyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error on read private key %s",
				r.PrivateKeyFile)
		}
		ans.PrivateKey = string(data)
	}

	return ans, nil
}

func (s *DdcSshExecutor) getSigner() (ssh.Signer, error) {
	var err error
	var signer ssh.Signer

	pemblock, _ := pem.Decode([]byte(s.PrivateKey))
	if pemblock == nil {
		return nil, fmt.Errorf("Pem decode failed, no key found")
	}

	// NOTE: IsEncryptedPEMBlock and DecryptPEMBlock are deprecated
	//       in go. OPENSSH keys are not detected as PEM encrypted.
	if x509.IsEncryptedPEMBlock(pemblock) {
		if s.PrivateKeyPass == "" {
			return nil, fmt.Errorf("Found private key encrypted but no password defined.")
		}

		pemblock.Bytes, err = x509.DecryptPEMBlock(pemblock,
			[]byte(s.PrivateKeyPass))
		if err != nil {
			return nil, fmt.Errorf("error on decrypting PEM: %s", err.Error())
		}

		switch pemblock.Type {
		case "RSA PRIVATE KEY":
			key, err := x509.ParsePKCS1PrivateKey(pemblock.Bytes)
			if err != nil {
				return nil, fmt.Errorf("Parsing PKCS private key failed %v", err)
			}
			signer, err = ssh.NewSignerFromKey(key)
		case "EC PRIVATE KEY":
			key, err := x509.ParseECPrivateKey(pemblock.Bytes)
			if err != nil {
				return nil, fmt.Errorf("Parsing EC private key failed %v", err)
			}
			signer, err = ssh.NewSignerFromKey(key)
		default:
			return nil, fmt.Errorf("Parsing private key failed, unsupported key type %q", pemblock.Type)
		}
	} else if s.PrivateKeyPass == "" {
		signer, err = ssh.ParsePrivateKey([]byte(s.PrivateKey))
	} else {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(
			[]byte(s.PrivateKey),
			[]byte(s.PrivateKeyPass),
		)
	}

	return signer, err
}

func (s *DdcSshExecutor) sshInteractive(user, instruction string, questions []string, echos []bool) (answers []string, err error) {
	answers = make([]string, len(questions))
	for n := range questions {
		answers[n] = s.Pass
	}

	return answers, nil
}

// agentAuth uses the keys of the running ssh-agent.
func (s *DdcSshExecutor) agentAuth() (ssh.AuthMethod, error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, fmt.Errorf("SSH_AUTH_SOCK not set, ssh-agent not available")
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, errors.Wrap(err, "error on connect to ssh-agent")
	}
	s.agentConn = conn

	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), nil
}

func (s *DdcSshExecutor) Close() error {
	for name, session := range s.Sessions {
		session.Close()
		delete(s.Sessions, name)
	}

	if s.SftpClient != nil {
		s.SftpClient.Close()
		s.SftpClient = nil
	}

	if s.agentConn != nil {
		s.agentConn.Close()
		s.agentConn = nil
	}

	if s.Client != nil {
		err := s.Client.Close()
		s.Client = nil
		return err
	}

	return nil
}

func (s *DdcSshExecutor) Setup() error {
	var err error

	conf := &ssh.ClientConfig{
		User:            s.User,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // XXX: Security issue
	}

	switch {
	case s.Pass != "":
		conf.Auth = []ssh.AuthMethod{
			ssh.Password(s.Pass),
			ssh.KeyboardInteractive(s.sshInteractive),
		}
	case s.UseAgent || s.PrivateKey == "":
		auth, err := s.agentAuth()
		if err != nil {
			return err
		}
		conf.Auth = []ssh.AuthMethod{auth}
	default:
		signer, err := s.getSigner()
		if err != nil {
			return err
		}
		conf.Auth = []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		}
	}

	s.Client, err = ssh.Dial(s.ConnProtocol,
		strings.Join([]string{s.Host, ":", fmt.Sprintf("%d", s.Port)}, ""), conf)
	if err != nil {
		return errors.Wrapf(err, "error on connect to %s@%s:%d",
			s.User, s.Host, s.Port)
	}

	s.Emitter.Emits(SshClientSetupDone, map[string]interface{}{
		"endpoint": s.Endpoint,
		"host":     s.Host,
	})

	return nil
}

func (s *DdcSshExecutor) SetupSftp(opts ...sftp.ClientOption) error {
	if s.SftpClient == nil {
		client, err := sftp.NewClient(s.Client, opts...)
		if err != nil {
			return err
		}
		s.SftpClient = client
	}
	return nil
}

func (s *DdcSshExecutor) GetEmitter() DdcExecutorEmitter        { return s.Emitter }
func (s *DdcSshExecutor) SetEmitter(emitter DdcExecutorEmitter) { s.Emitter = emitter }
func (s *DdcSshExecutor) GetClient() *ssh.Client                { return s.Client }
func (s *DdcSshExecutor) GetSftpClient() *sftp.Client           { return s.SftpClient }
func (s *DdcSshExecutor) GetEndpoint() string                   { return s.Endpoint }
func (s *DdcSshExecutor) GetHost() string                       { return s.Host }
func (s *DdcSshExecutor) GetPort() int                          { return s.Port }
func (s *DdcSshExecutor) GetUser() string                       { return s.User }

func (s *DdcSshExecutor) RemoveSession(n string) error {
	session, err := s.GetSession(n)
	if err != nil {
		return err
	}

	session.Close()
	delete(s.Sessions, n)

	return nil
}

func (s *DdcSshExecutor) GetSession(n string) (*DdcSshSession, error) {
	if _, ok := s.Sessions[n]; ok {
		return s.Sessions[n], nil
	}

	if s.Client == nil {
		return nil, fmt.Errorf("ssh client not initialized")
	}

	session, err := s.Client.NewSession()
	if err != nil {
		return nil, err
	}

	s.Sessions[n] = NewDdcSshSession(n, session)
	return s.Sessions[n], nil
}
