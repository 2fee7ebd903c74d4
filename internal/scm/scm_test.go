package scm_test

import (
	"errors"

	"github.com/Adv-2005/DocuGenAI/internal/scm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SplitFullName", func() {
	It("splits at the last slash", func() {
		owner, name, err := scm.SplitFullName("acme/backend/api")
		Expect(err).NotTo(HaveOccurred())
		Expect(owner).To(Equal("acme/backend"))
		Expect(name).To(Equal("api"))
	})

	DescribeTable("rejects malformed names",
		func(input string) {
			_, _, err := scm.SplitFullName(input)
			Expect(errors.Is(err, scm.ErrInvalidRepoName)).To(BeTrue())
		},
		Entry("no slash", "acme"),
		Entry("leading slash", "/web"),
		Entry("trailing slash", "acme/"),
		Entry("empty", ""),
	)
})

var _ = Describe("ParseProvider", func() {
	It("accepts known providers case-insensitively", func() {
		p, err := scm.ParseProvider("GitHub")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(scm.ProviderGitHub))
	})

	It("rejects unknown providers", func() {
		_, err := scm.ParseProvider("bitbucket")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("UpstreamHTTPError", func() {
	It("matches ErrNotFound only for 404", func() {
		Expect(errors.Is(&scm.UpstreamHTTPError{StatusCode: 404}, scm.ErrNotFound)).To(BeTrue())
		Expect(errors.Is(&scm.UpstreamHTTPError{StatusCode: 500}, scm.ErrNotFound)).To(BeFalse())
	})
})

var _ = Describe("Hosts", func() {
	It("resolves GitLab hosts per instance", func() {
		gh, err := scm.NewGitHubHost(scm.GitHubOptions{})
		Expect(err).NotTo(HaveOccurred())
		hosts := scm.NewHosts(gh, scm.GitLabOptions{BaseURL: "https://gitlab.com"})

		h, err := hosts.Get(scm.ProviderGitLab, "https://git.example.com/")
		Expect(err).NotTo(HaveOccurred())
		Expect(h.(*scm.GitLabHost).BaseURL()).To(Equal("https://git.example.com"))

		h, err = hosts.Get(scm.ProviderGitLab, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(h.(*scm.GitLabHost).BaseURL()).To(Equal("https://gitlab.com"))

		h, err = hosts.Get(scm.ProviderGitHub, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(BeIdenticalTo(gh))

		_, err = hosts.Get(scm.Provider("svn"), "")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("error messages", func() {
	It("names the host the way users know it", func() {
		err := &scm.UpstreamHTTPError{Provider: scm.ProviderGitHub, StatusCode: 500}
		Expect(err.Error()).To(Equal("GitHub responded with 500"))
	})
})
