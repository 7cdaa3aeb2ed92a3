package handler_test

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/internal/http/handler"
)

var _ = Describe("HealthHandler", func() {
	serve := func(p handler.Pinger) (int, map[string]any) {
		router := gin.New()
		router.GET("/health", handler.NewHealthHandler(p).Health)
		w := doRequestWithoutAuth(router, http.MethodGet, "/health")
		return w.Code, decodeBody(w)
	}

	It("reports ok when the database answers", func() {
		code, body := serve(&fakePinger{})
		Expect(code).To(Equal(http.StatusOK))
		Expect(body["status"]).To(Equal("ok"))
	})

	It("reports 503 when the database is down", func() {
		code, body := serve(&fakePinger{err: errors.New("connection refused")})
		Expect(code).To(Equal(http.StatusServiceUnavailable))
		Expect(body["status"]).To(Equal("unavailable"))
	})
})
