/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs

import (
	"strings"

	"github.com/jinzhu/copier"
	v "github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DDC_SHOB_CONFIGNAME = ".ddc-shob"
	DDC_SHOB_ENV_PREFIX = "DDC_SHOB"
	DDC_SHOB_VERSION    = `0.3.0`

	DefaultService = "api"
)

type DdcConfig struct {
	Viper *v.Viper `yaml:"-" json:"-"`

	General DdcGeneral `mapstructure:"general" json:"general,omitempty" yaml:"general,omitempty"`
	Compose DdcCompose `mapstructure:"compose" json:"compose,omitempty" yaml:"compose,omitempty"`
	Django  DdcDjango  `mapstructure:"django" json:"django,omitempty" yaml:"django,omitempty"`
	PurgeDb DdcPurgeDb `mapstructure:"purge_db" json:"purge_db,omitempty" yaml:"purge_db,omitempty"`
	Deploy  DdcDeploy  `mapstructure:"deploy" json:"deploy,omitempty" yaml:"deploy,omitempty"`
	Logging DdcLogging `mapstructure:"logging" json:"logging,omitempty" yaml:"logging,omitempty"`
}

type DdcGeneral struct {
	Debug          bool   `mapstructure:"debug,omitempty" json:"debug,omitempty" yaml:"debug,omitempty"`
	DefaultService string `mapstructure:"default_service,omitempty" json:"default_service,omitempty" yaml:"default_service,omitempty"`
	RemotesConfDir string `mapstructure:"remotes_confdir,omitempty" json:"remotes_confdir,omitempty" yaml:"remotes_confdir,omitempty"`
	DryRun         bool   `mapstructure:"dry_run,omitempty" json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

type DdcCompose struct {
	// Command used to reach compose. Ex: docker-compose or "docker compose"
	Command     string   `mapstructure:"command,omitempty" json:"command,omitempty" yaml:"command,omitempty"`
	Files       []string `mapstructure:"files,omitempty" json:"files,omitempty" yaml:"files,omitempty"`
	ProjectName string   `mapstructure:"project_name,omitempty" json:"project_name,omitempty" yaml:"project_name,omitempty"`
}

type DdcDjango struct {
	Python               string   `mapstructure:"python,omitempty" json:"python,omitempty" yaml:"python,omitempty"`
	ManageScript         string   `mapstructure:"manage_script,omitempty" json:"manage_script,omitempty" yaml:"manage_script,omitempty"`
	Pytest               string   `mapstructure:"pytest,omitempty" json:"pytest,omitempty" yaml:"pytest,omitempty"`
	LintPath             string   `mapstructure:"lint_path,omitempty" json:"lint_path,omitempty" yaml:"lint_path,omitempty"`
	LintJobs             []string `mapstructure:"lint_jobs,omitempty" json:"lint_jobs,omitempty" yaml:"lint_jobs,omitempty"`
	PydocstyleConvention string   `mapstructure:"pydocstyle_convention,omitempty" json:"pydocstyle_convention,omitempty" yaml:"pydocstyle_convention,omitempty"`
	MypyLevel            string   `mapstructure:"mypy_level,omitempty" json:"mypy_level,omitempty" yaml:"mypy_level,omitempty"`
}

type DdcPurgeDb struct {
	DataDir string `mapstructure:"data_dir,omitempty" json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

type DdcDeploy struct {
	Remote        string   `mapstructure:"remote,omitempty" json:"remote,omitempty" yaml:"remote,omitempty"`
	RemoteDir     string   `mapstructure:"remote_dir,omitempty" json:"remote_dir,omitempty" yaml:"remote_dir,omitempty"`
	UploadDir     string   `mapstructure:"upload_dir,omitempty" json:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`
	ArchiveName   string   `mapstructure:"archive_name,omitempty" json:"archive_name,omitempty" yaml:"archive_name,omitempty"`
	Excludes      []string `mapstructure:"excludes,omitempty" json:"excludes,omitempty" yaml:"excludes,omitempty"`
	IgnoreFile    string   `mapstructure:"ignore_file,omitempty" json:"ignore_file,omitempty" yaml:"ignore_file,omitempty"`
	BuildCommands []string `mapstructure:"build_commands,omitempty" json:"build_commands,omitempty" yaml:"build_commands,omitempty"`
	StartCommands []string `mapstructure:"start_commands,omitempty" json:"start_commands,omitempty" yaml:"start_commands,omitempty"`
}

type DdcLogging struct {
	// Path of the logfile
	Path string `mapstructure:"path,omitempty" json:"path,omitempty" yaml:"path,omitempty"`
	// Enable/Disable logging to file
	EnableLogFile bool `mapstructure:"enable_logfile,omitempty" json:"enable_logfile,omitempty" yaml:"enable_logfile,omitempty"`
	// Enable JSON format logging in file
	JsonFormat bool `mapstructure:"json_format,omitempty" json:"json_format,omitempty" yaml:"json_format,omitempty"`

	// Log level
	Level string `mapstructure:"level,omitempty" json:"level,omitempty" yaml:"level,omitempty"`

	// Enable emoji
	EnableEmoji bool `mapstructure:"enable_emoji,omitempty" json:"enable_emoji,omitempty" yaml:"enable_emoji,omitempty"`
	// Enable/Disable color in logging
	Color bool `mapstructure:"color,omitempty" json:"color,omitempty" yaml:"color,omitempty"`

	// Enable/Disable commands output logging
	RuntimeCmdsOutput bool `mapstructure:"runtime_cmds_output,omitempty" json:"runtime_cmds_output,omitempty" yaml:"runtime_cmds_output,omitempty"`
	CmdsOutput        bool `mapstructure:"cmds_output,omitempty" json:"cmds_output,omitempty" yaml:"cmds_output,omitempty"`
}

func NewDdcConfig(viper *v.Viper) *DdcConfig {
	if viper == nil {
		viper = v.New()
	}

	GenDefault(viper)
	return &DdcConfig{Viper: viper}
}

// NewDefaultDdcConfig returns a config already populated with
// the default values.
func NewDefaultDdcConfig() *DdcConfig {
	ans := NewDdcConfig(nil)
	_ = ans.Viper.Unmarshal(ans)
	return ans
}

// Clone returns a deep copy of the config. The viper instance is shared.
func (c *DdcConfig) Clone() *DdcConfig {
	ans := &DdcConfig{}
	src := *c
	src.Viper = nil

	_ = copier.CopyWithOption(ans, &src, copier.Option{DeepCopy: true})
	ans.Viper = c.Viper

	return ans
}

func (c *DdcConfig) GetGeneral() *DdcGeneral { return &c.General }
func (c *DdcConfig) GetCompose() *DdcCompose { return &c.Compose }
func (c *DdcConfig) GetDjango() *DdcDjango   { return &c.Django }
func (c *DdcConfig) GetPurgeDb() *DdcPurgeDb { return &c.PurgeDb }
func (c *DdcConfig) GetDeploy() *DdcDeploy   { return &c.Deploy }
func (c *DdcConfig) GetLogging() *DdcLogging { return &c.Logging }

func (c *DdcConfig) Unmarshal() error {
	var err error

	err = c.Viper.ReadInConfig()
	if err != nil {
		return err
	}

	err = c.Viper.Unmarshal(c)

	return err
}

func (c *DdcConfig) Yaml() ([]byte, error) {
	return yaml.Marshal(c)
}

func GenDefault(viper *v.Viper) {
	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.default_service", DefaultService)
	viper.SetDefault("general.remotes_confdir", "")
	viper.SetDefault("general.dry_run", false)

	viper.SetDefault("compose.command", "docker-compose")
	viper.SetDefault("compose.files", []string{})
	viper.SetDefault("compose.project_name", "")

	viper.SetDefault("django.python", "python")
	viper.SetDefault("django.manage_script", "manage.py")
	viper.SetDefault("django.pytest", "pytest")
	viper.SetDefault("django.lint_path", "/app")
	viper.SetDefault("django.lint_jobs", []string{"black", "flake8", "prospector"})
	viper.SetDefault("django.pydocstyle_convention", "numpy")
	viper.SetDefault("django.mypy_level", "strict")

	viper.SetDefault("purge_db.data_dir", "pg")

	viper.SetDefault("deploy.remote", "")
	viper.SetDefault("deploy.remote_dir", "/home/{{ .User }}/web")
	viper.SetDefault("deploy.upload_dir", "/tmp")
	viper.SetDefault("deploy.archive_name", "deployment")
	viper.SetDefault("deploy.excludes", []string{
		"pg", ".git", "**/__pycache__", "*.pyc", "deployment.tar.gz",
	})
	viper.SetDefault("deploy.ignore_file", ".ddcignore")
	viper.SetDefault("deploy.build_commands", []string{
		"mkdir -p {{ .RemoteDir }}",
		"tar -zxf {{ .ArchivePath }} -C {{ .RemoteDir }}",
		"rm -f {{ .ArchivePath }}",
		"cd {{ .RemoteDir }} && {{ .Compose }} rm -s -f",
		"cd {{ .RemoteDir }} && {{ .Compose }} build",
	})
	viper.SetDefault("deploy.start_commands", []string{
		"cd {{ .RemoteDir }} && {{ .Compose }} up -d",
	})

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.enable_logfile", false)
	viper.SetDefault("logging.path", "./logs/ddc-shob.log")
	viper.SetDefault("logging.json_format", false)
	viper.SetDefault("logging.enable_emoji", true)
	viper.SetDefault("logging.color", true)
	viper.SetDefault("logging.cmds_output", true)
	viper.SetDefault("logging.runtime_cmds_output", true)
}

func (g *DdcGeneral) HasDebug() bool {
	return g.Debug
}

// GetComposeCommand returns the program and the prefix arguments
// to use on every compose invocation.
func (c *DdcCompose) GetComposeCommand() (string, []string) {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		fields = []string{"docker-compose"}
	}

	args := []string{}
	args = append(args, fields[1:]...)
	if c.ProjectName != "" {
		args = append(args, "-p", c.ProjectName)
	}
	for _, f := range c.Files {
		args = append(args, "-f", f)
	}

	return fields[0], args
}
