package config_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/core/config"
)

var _ = Describe("Load", func() {
	setEnv := func(key, value string) {
		prev, had := os.LookupEnv(key)
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(func() {
			if had {
				_ = os.Setenv(key, prev)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}

	BeforeEach(func() {
		setEnv("FRACTAL_ENV", "test")
		setEnv("JWT_SECRET", "secret")
		setEnv("AUTH_PROVIDER", "google")
		setEnv("GOOGLE_CLIENT_ID", "client")
		setEnv("GOOGLE_CLIENT_SECRET", "shh")
	})

	It("loads defaults around the required values", func() {
		setEnv("FRONTEND_URL", "https://app.fractal.dev/")
		setEnv("JWT_TTL_HOURS", "2")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Port).To(Equal("8080"))
		Expect(cfg.FrontendURL).To(Equal("https://app.fractal.dev"))
		Expect(cfg.JWT.TTL).To(Equal(2 * time.Hour))
		Expect(cfg.Auth.Provider).To(Equal(config.AuthProviderGoogle))
		Expect(cfg.Notify.Enabled()).To(BeFalse())
		Expect(cfg.RateLimit.Enabled()).To(BeTrue())
	})

	It("reads the log level and trace sampling overrides", func() {
		setEnv("LOG_LEVEL", "WARN")
		setEnv("OTEL_TRACES_SAMPLE_RATIO", "0.25")

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LogLevel).To(Equal("warn"))
		Expect(cfg.OTel.SampleRatio).To(Equal(0.25))
		Expect(cfg.OTel.Environment).To(Equal("test"))
	})

	It("rejects a sample ratio outside [0, 1]", func() {
		setEnv("OTEL_TRACES_SAMPLE_RATIO", "1.5")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("OTEL_TRACES_SAMPLE_RATIO")))
	})

	It("requires a JWT secret", func() {
		setEnv("JWT_SECRET", "")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("JWT_SECRET")))
	})

	It("requires credentials for the selected provider", func() {
		setEnv("AUTH_PROVIDER", "workos")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("WORKOS_API_KEY")))
	})

	It("rejects unknown providers", func() {
		setEnv("AUTH_PROVIDER", "github")

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("unknown AUTH_PROVIDER")))
	})
})
