/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor_test

import (
	"bytes"
	"context"
	"os"

	. "github.com/MottainaiCI/ddc-shob/pkg/executor"
	"github.com/MottainaiCI/ddc-shob/pkg/helpers"
	"github.com/MottainaiCI/ddc-shob/pkg/specs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExecRunner", func() {

	var runner *ExecRunner
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	BeforeEach(func() {
		stdout.Reset()
		stderr.Reset()

		emitter := NewDdcEmitter()
		emitter.SetHostWriterStdout(helpers.NewNopCloseWriter(&stdout))
		emitter.SetHostWriterStderr(helpers.NewNopCloseWriter(&stderr))
		runner = NewExecRunner(os.TempDir(), emitter)
	})

	It("returns the exit code of the child", func() {
		code, err := runner.Run(ctx, specs.NewProcessInvocation("", "sh", "-c", "exit 3"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(code).To(Equal(3))
	})

	It("streams the output of a non interactive child", func() {
		code, err := runner.Run(ctx, specs.NewProcessInvocation("", "sh", "-c", "echo out; echo err >&2"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(code).To(Equal(0))
		Expect(stdout.String()).To(Equal("out\n"))
		Expect(stderr.String()).To(Equal("err\n"))
	})

	It("hides the stdout of a non interactive child", func() {
		runner.ShowOutput = false
		code, err := runner.Run(ctx, specs.NewProcessInvocation("", "sh", "-c", "echo out; echo err >&2"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(code).To(Equal(0))
		Expect(stdout.String()).To(BeEmpty())
		Expect(stderr.String()).To(Equal("err\n"))
	})

	It("attaches the stdio of an interactive child", func() {
		var out bytes.Buffer
		runner.Stdin = bytes.NewBufferString("hello\n")
		runner.Stdout = &out

		inv := specs.NewProcessInvocation("", "cat").SetInteractive(true)
		code, err := runner.Run(ctx, inv)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(code).To(Equal(0))
		Expect(out.String()).To(Equal("hello\n"))
	})

	It("fails with a missing program", func() {
		code, err := runner.Run(ctx, specs.NewProcessInvocation("", "ddc-shob-not-existing-cmd"))
		Expect(err).Should(HaveOccurred())
		Expect(code).To(Equal(ExitCodeNotFound))
	})
})
