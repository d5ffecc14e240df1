/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	AuthMethodPassword  = "password"
	AuthMethodPublickey = "publickey"
	AuthMethodAgent     = "agent"

	DefaultSshPort = 22
)

// RemotesConfig is the file with the deploy targets.
type RemotesConfig struct {
	File          string             `json:"-" yaml:"-"`
	DefaultRemote string             `json:"default-remote,omitempty" yaml:"default-remote,omitempty"`
	Remotes       map[string]*Remote `json:"remotes,omitempty" yaml:"remotes,omitempty"`
}

// Remote is a host reachable over ssh where the project is deployed.
type Remote struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	// publickey|password|agent
	AuthMethod     string `json:"auth_type,omitempty" yaml:"auth_type,omitempty"`
	User           string `json:"user,omitempty" yaml:"user,omitempty"`
	Pass           string `json:"pass,omitempty" yaml:"pass,omitempty"`
	PrivateKeyFile string `json:"privatekey_file,omitempty" yaml:"privatekey_file,omitempty"`
	PrivateKeyPass string `json:"privatekey_pass,omitempty" yaml:"privatekey_pass,omitempty"`
	// Overrides deploy.remote_dir.
	RemoteDir string `json:"remote_dir,omitempty" yaml:"remote_dir,omitempty"`
}

func NewRemote(host, protocol, authMethod string, port int) *Remote {
	return &Remote{
		Host:       host,
		Port:       port,
		Protocol:   protocol,
		AuthMethod: authMethod,
	}
}

func (r *Remote) SetPrivateKeyFile(f string) { r.PrivateKeyFile = f }
func (r *Remote) SetPrivateKeyPass(p string) { r.PrivateKeyPass = p }
func (r *Remote) SetUser(u string)           { r.User = u }
func (r *Remote) SetPass(p string)           { r.Pass = p }
func (r *Remote) SetRemoteDir(d string)      { r.RemoteDir = d }

func (r *Remote) GetHost() string           { return r.Host }
func (r *Remote) GetPort() int              { return r.Port }
func (r *Remote) GetProtocol() string       { return r.Protocol }
func (r *Remote) GetAuthMethod() string     { return r.AuthMethod }
func (r *Remote) GetPrivateKeyFile() string { return r.PrivateKeyFile }
func (r *Remote) GetPrivateKeyPass() string { return r.PrivateKeyPass }
func (r *Remote) GetUser() string           { return r.User }
func (r *Remote) GetPass() string           { return r.Pass }
func (r *Remote) GetRemoteDir() string      { return r.RemoteDir }

// Endpoint returns the remote in the format protocol::host:port.
func (r *Remote) Endpoint() string {
	if r.Port > 0 {
		return fmt.Sprintf("%s::%s:%d", r.Protocol, r.Host, r.Port)
	}
	return fmt.Sprintf("%s::%s", r.Protocol, r.Host)
}

// Sanitize sets the missing values. Without an explicit auth method the
// private key wins over the password and the ssh-agent is the fallback.
func (r *Remote) Sanitize() {
	if r.Protocol == "" {
		r.Protocol = "tcp"
	}
	if r.Port <= 0 {
		r.Port = DefaultSshPort
	}
	if r.AuthMethod != "" {
		return
	}

	switch {
	case r.PrivateKeyFile != "":
		r.AuthMethod = AuthMethodPublickey
	case r.Pass != "":
		r.AuthMethod = AuthMethodPassword
	default:
		r.AuthMethod = AuthMethodAgent
	}
}

func (r *Remote) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("remote without host")
	}
	if r.User == "" {
		return fmt.Errorf("remote %s without user", r.Host)
	}

	switch r.AuthMethod {
	case AuthMethodPassword:
		if r.Pass == "" {
			return fmt.Errorf("remote %s uses password auth without password", r.Host)
		}
	case AuthMethodPublickey:
		if r.PrivateKeyFile == "" {
			return fmt.Errorf("remote %s uses publickey auth without private key file", r.Host)
		}
	case AuthMethodAgent:
	default:
		return fmt.Errorf("invalid auth method %q for remote %s", r.AuthMethod, r.Host)
	}
	return nil
}

// ExpandHome replaces the leading ~ with the home directory of the user.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func NewRemotesConfig() *RemotesConfig {
	return &RemotesConfig{
		Remotes: make(map[string]*Remote),
	}
}

func RemotesConfigFromYaml(data []byte, file string) (*RemotesConfig, error) {
	ans := NewRemotesConfig()
	if err := yaml.Unmarshal(data, ans); err != nil {
		return nil, fmt.Errorf("invalid remotes file %s: %w", file, err)
	}
	ans.File = file
	if ans.Remotes == nil {
		ans.Remotes = make(map[string]*Remote)
	}

	return ans, nil
}

func RemotesConfigFromFile(file string) (*RemotesConfig, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return RemotesConfigFromYaml(content, file)
}

func (rc *RemotesConfig) SetDefault(remote string) { rc.DefaultRemote = remote }
func (rc *RemotesConfig) GetDefault() string       { return rc.DefaultRemote }

func (rc *RemotesConfig) HasRemote(remote string) bool {
	_, present := rc.Remotes[remote]
	return present
}

func (rc *RemotesConfig) GetRemote(remote string) *Remote {
	return rc.Remotes[remote]
}

// Names returns the sorted names of the remotes matching the regex.
// An empty search returns all the remotes.
func (rc *RemotesConfig) Names(search string) ([]string, error) {
	var r *regexp.Regexp
	if search != "" {
		var err error
		r, err = regexp.Compile(search)
		if err != nil {
			return nil, fmt.Errorf("invalid search %q: %w", search, err)
		}
	}

	ans := []string{}
	for name := range rc.Remotes {
		if r == nil || r.MatchString(name) {
			ans = append(ans, name)
		}
	}
	sort.Strings(ans)

	return ans, nil
}

// Lookup returns a sanitized copy of the remote. The private key file
// is resolved from the directory of the remotes file when relative.
func (rc *RemotesConfig) Lookup(name string) (*Remote, error) {
	r, present := rc.Remotes[name]
	if !present || r == nil {
		return nil, fmt.Errorf("remote %s not found", name)
	}

	ans := *r
	ans.Sanitize()

	if ans.PrivateKeyFile != "" {
		ans.PrivateKeyFile = ExpandHome(ans.PrivateKeyFile)
		if !filepath.IsAbs(ans.PrivateKeyFile) && rc.File != "" {
			dir, err := rc.GetAbsConfigDir()
			if err != nil {
				return nil, err
			}
			ans.PrivateKeyFile = filepath.Join(dir, ans.PrivateKeyFile)
		}
	}

	return &ans, nil
}

func (rc *RemotesConfig) Sanitize() {
	for _, r := range rc.Remotes {
		if r != nil {
			r.Sanitize()
		}
	}
}

func (rc *RemotesConfig) AddRemote(name string, r *Remote) { rc.Remotes[name] = r }
func (rc *RemotesConfig) DelRemote(name string)            { delete(rc.Remotes, name) }

// Write stores the remotes file. It may contain passwords: the file
// is readable only by the owner.
func (rc *RemotesConfig) Write() error {
	if rc.File == "" {
		return fmt.Errorf("remotes config without file path")
	}

	data, err := yaml.Marshal(rc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(rc.File), 0700); err != nil {
		return err
	}

	return os.WriteFile(rc.File, data, 0600)
}

func (rc *RemotesConfig) GetAbsConfigDir() (string, error) {
	if rc.File == "" {
		return "", fmt.Errorf("remotes config without file path")
	}

	abs, err := filepath.Abs(rc.File)
	if err != nil {
		return "", err
	}

	return filepath.Dir(abs), nil
}
