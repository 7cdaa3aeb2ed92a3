package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/common/logger"
	"fractal.app/api/internal/http/middleware"
)

var _ = Describe("RequestID", func() {
	var (
		router  *gin.Engine
		fromCtx string
		fromGin string
	)

	BeforeEach(func() {
		router = gin.New()
		router.Use(middleware.RequestID())
		router.GET("/", func(c *gin.Context) {
			fromGin = middleware.GetRequestID(c)
			if rid := logger.GetLogFields(c.Request.Context()).RequestID; rid != nil {
				fromCtx = *rid
			}
			c.Status(http.StatusNoContent)
		})
	})

	It("mints a ULID when none is supplied", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		rid := w.Header().Get(middleware.RequestIDHeader)
		_, err := ulid.ParseStrict(rid)
		Expect(err).NotTo(HaveOccurred())
		Expect(fromCtx).To(Equal(rid))
		Expect(fromGin).To(Equal(rid))
	})

	It("keeps the caller's id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("abc-123"))
		Expect(fromCtx).To(Equal("abc-123"))
	})

	It("issues increasing ids", func() {
		var ids []string
		for range 3 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			ids = append(ids, w.Header().Get(middleware.RequestIDHeader))
		}
		Expect(ids[0] < ids[1] && ids[1] < ids[2]).To(BeTrue())
	})
})
