/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package specs_test

import (
	"os"
	"path/filepath"

	. "github.com/MottainaiCI/ddc-shob/pkg/specs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Remotes", func() {

	Context("Remote", func() {

		It("sanitizes the defaults", func() {
			r := &Remote{Host: "10.0.0.1", User: "ubuntu"}
			r.Sanitize()
			Expect(r.Port).To(Equal(22))
			Expect(r.Protocol).To(Equal("tcp"))
			Expect(r.AuthMethod).To(Equal(AuthMethodAgent))
			Expect(r.Validate()).To(Succeed())
		})

		It("infers publickey auth", func() {
			r := &Remote{Host: "10.0.0.1", User: "ubuntu", PrivateKeyFile: "/tmp/id"}
			r.Sanitize()
			Expect(r.AuthMethod).To(Equal(AuthMethodPublickey))
		})

		It("validates the auth method", func() {
			r := NewRemote("10.0.0.1", "tcp", AuthMethodPassword, 22)
			r.SetUser("ubuntu")
			Expect(r.Validate()).ShouldNot(Succeed())
			r.SetPass("secret")
			Expect(r.Validate()).To(Succeed())

			r.AuthMethod = "kerberos"
			Expect(r.Validate()).ShouldNot(Succeed())
		})
	})

	Context("RemotesConfig", func() {

		It("writes and reads the config file", func() {
			dir, err := os.MkdirTemp("", "ddc-shob-remotes")
			Expect(err).ShouldNot(HaveOccurred())
			defer os.RemoveAll(dir)

			rc := NewRemotesConfig()
			rc.File = filepath.Join(dir, "config.yml")
			r := NewRemote("prod.example.com", "tcp", AuthMethodAgent, 2222)
			r.SetUser("deploy")
			rc.AddRemote("prod", r)
			rc.SetDefault("prod")
			Expect(rc.Write()).To(Succeed())

			loaded, err := LoadRemotesConfig(dir)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(loaded.GetDefault()).To(Equal("prod"))
			Expect(loaded.HasRemote("prod")).To(BeTrue())
			Expect(loaded.GetRemote("prod").GetPort()).To(Equal(2222))
			Expect(loaded.GetRemote("prod").GetUser()).To(Equal("deploy"))

			loaded.DelRemote("prod")
			Expect(loaded.HasRemote("prod")).To(BeFalse())
		})

		It("fails with a missing config dir", func() {
			_, err := LoadRemotesConfig("/nonexistent/ddc-shob")
			Expect(err).Should(HaveOccurred())
		})

		It("filters and sorts the names", func() {
			rc := NewRemotesConfig()
			rc.AddRemote("prod-b", NewRemote("b", "tcp", "", 22))
			rc.AddRemote("prod-a", NewRemote("a", "tcp", "", 22))
			rc.AddRemote("stage", NewRemote("s", "tcp", "", 22))

			names, err := rc.Names("")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(names).To(Equal([]string{"prod-a", "prod-b", "stage"}))

			names, err = rc.Names("^prod")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(names).To(Equal([]string{"prod-a", "prod-b"}))

			_, err = rc.Names("[")
			Expect(err).Should(HaveOccurred())
		})

		It("resolves the private key from the config dir", func() {
			rc := NewRemotesConfig()
			rc.File = "/etc/ddc-shob/config.yml"
			r := NewRemote("10.0.0.1", "", "", 0)
			r.SetUser("ubuntu")
			r.SetPrivateKeyFile("keys/id_ed25519")
			rc.AddRemote("prod", r)

			found, err := rc.Lookup("prod")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(found.PrivateKeyFile).To(Equal("/etc/ddc-shob/keys/id_ed25519"))
			Expect(found.AuthMethod).To(Equal(AuthMethodPublickey))
			Expect(found.Endpoint()).To(Equal("tcp::10.0.0.1:22"))
			// The stored remote is unchanged.
			Expect(r.PrivateKeyFile).To(Equal("keys/id_ed25519"))

			_, err = rc.Lookup("missing")
			Expect(err).Should(HaveOccurred())
		})

		It("parses an empty yaml", func() {
			rc, err := RemotesConfigFromYaml([]byte(""), "x.yml")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(rc.Remotes).ToNot(BeNil())
		})
	})
})
