package provisioner

import (
	"github.com/firefly-engineering/kitchen-puppet/internal/command"
	"github.com/firefly-engineering/kitchen-puppet/internal/config"
)

// Remote locations outside root_path that Hiera reads from.
const (
	remoteVarLib          = "/var/lib/"
	remoteHieraData       = "/var/lib/hiera"
	remoteEtc             = "/etc/"
	remoteEtcPuppet       = "/etc/puppet/"
	remoteHieraConfig     = "/etc/hiera.yaml"
	remotePuppetHieraConf = "/etc/puppet/hiera.yaml"
)

// Phase is a named lifecycle command.
type Phase struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}

// Commands returns the command of every phase in lifecycle order.
func (p *Provisioner) Commands() []Phase {
	return []Phase{
		{Name: "init", Command: p.InitCommand()},
		{Name: "install", Command: p.InstallCommand()},
		{Name: "prepare", Command: p.PrepareCommand()},
		{Name: "run", Command: p.RunCommand()},
	}
}

// InstallCommand returns the script installing puppet when it is not on PATH.
func (p *Provisioner) InstallCommand() string {
	p.log.Info("installing puppet", "platform", p.cfg.PuppetPlatform, "version", p.cfg.PuppetVersion)

	sudo := p.cfg.SudoHelper()
	script := command.NewBuilder(command.SepLine).Add("if [ ! $(which puppet) ]; then")

	switch p.cfg.Family {
	case config.FamilyDebian:
		script.Add(
			"  "+sudo.Wrap("wget")+" "+p.cfg.PuppetAptRepo,
			"  "+sudo.Wrap("dpkg")+" -i "+p.cfg.AptRepoFile(),
		)
		script.AddIf(p.cfg.UpdatePackages, "  "+sudo.Wrap("apt-get")+" -y update")
		script.Add("  " + sudo.Wrap("apt-get") + " -y install puppet" + p.cfg.VersionSuffix())
	case config.FamilyRedHat:
		script.Add("  " + sudo.Wrap("rpm") + " -ivh " + p.cfg.PuppetYumRepo)
		script.AddIf(p.cfg.UpdatePackages, "  "+sudo.Wrap("yum")+" -y update")
		script.Add("  " + sudo.Wrap("yum") + " -y install puppet" + p.cfg.VersionSuffix())
	}

	return script.Add("fi").String()
}

// InitCommand returns the command clearing previous state on the instance.
func (p *Provisioner) InitCommand() string {
	sudo := p.cfg.SudoHelper()

	rm := command.NewBuilder(command.SepWord).
		Add(sudo.Wrap("rm"), "-rf").
		Add(
			p.cfg.RemotePath("modules"),
			p.cfg.RemotePath("manifests"),
			p.cfg.RemotePath("hiera"),
			p.cfg.RemotePath("hiera.yaml"),
		).
		Add(remoteHieraData, remoteHieraConfig, remotePuppetHieraConf)

	cmd := command.NewBuilder(command.SepCommand).
		Add(rm.String(), "mkdir -p "+p.cfg.RootPath).
		String()
	p.log.Debug("init command", "command", cmd)
	return cmd
}

// PrepareCommand returns the command putting staged Hiera files in place.
// It is empty when neither a Hiera config nor Hiera data is configured.
func (p *Provisioner) PrepareCommand() string {
	sudo := p.cfg.SudoHelper()
	hieraYAML := p.cfg.RemotePath("hiera.yaml")

	cmd := command.NewBuilder(command.SepAnd).
		AddIf(p.cfg.HieraConfigured(), sudo.Wrap("cp")+" "+hieraYAML+" "+remoteEtc).
		AddIf(p.cfg.HieraConfigured(), sudo.Wrap("cp")+" "+hieraYAML+" "+remoteEtcPuppet).
		AddIf(p.cfg.HieraDataConfigured(), sudo.Wrap("cp -r")+" "+p.cfg.RemotePath("hiera")+" "+remoteVarLib).
		String()
	p.log.Debug("prepare command", "command", cmd)
	return cmd
}

// RunCommand returns the puppet apply invocation.
func (p *Provisioner) RunCommand() string {
	sudo := p.cfg.SudoHelper()

	return command.NewBuilder(command.SepWord).
		Add(p.factsExport()).
		Add(sudo.Wrap("puppet"), "apply", p.cfg.RemotePath("manifests", p.cfg.Manifest)).
		Addf("--modulepath=%s", p.cfg.RemotePath("modules")).
		Addf("--manifestdir=%s", p.cfg.RemotePath("manifests")).
		AddIf(p.cfg.PuppetNoop, "--noop").
		AddIf(p.cfg.PuppetVerbose, "-v").
		AddIf(p.cfg.PuppetDebug, "-d").
		String()
}

// factsExport renders custom facts as a single export statement, or "" without facts.
func (p *Provisioner) factsExport() string {
	vars := command.NewBuilder(command.SepWord)
	for _, fact := range p.cfg.CustomFacts {
		vars.Addf("FACTER_%s=%s", fact.Name, command.QuoteValue(fact.Value))
	}
	if vars.Len() == 0 {
		return ""
	}

	export := "export " + vars.String() + ";"
	p.log.Debug("custom facts", "export", export)
	return export
}
