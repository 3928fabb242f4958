package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/clinsync/triage-api/external/advisory"
	"github.com/clinsync/triage-api/logmodule"
	"github.com/clinsync/triage-api/repo"
	"github.com/clinsync/triage-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Shared repository, the in-memory view kept in sync with the remote
	// store
	repo *repo.Repository

	// Remote store, used directly for account administration
	store store.TriageStore

	// JWT signing secret
	jwtSecret []byte

	// External services
	advisoryClient advisory.Client

	// http client for calling external services
	httpClient *http.Client
}

// NewServer new instance of server
func NewServer(
	repository *repo.Repository,
	triageStore store.TriageStore,
	jwtSecret []byte,
	advisoryClient advisory.Client) *Server {
	httpClient := &http.Client{
		Timeout: 5 * time.Minute,
	}

	return &Server{
		repo:           repository,
		store:          triageStore,
		jwtSecret:      jwtSecret,
		advisoryClient: advisoryClient,
		httpClient:     httpClient,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	apiRoute.POST("/auth", s.requestJWT)

	// self-registration is open; the account stays unusable until an
	// administrator approves it
	apiRoute.POST("/accounts", s.accountRegister)

	// api routes below require a signed-in account
	authedRoute := apiRoute.Group("")
	authedRoute.Use(s.authMiddleware())

	accountRoute := authedRoute.Group("/accounts")
	accountRoute.Use(s.adminMiddleware())
	{
		accountRoute.GET("", s.accountList)
		accountRoute.PATCH("/:accountID", s.accountUpdate)
		accountRoute.DELETE("/:accountID", s.accountDelete)
	}

	caseRoute := authedRoute.Group("/cases")
	{
		caseRoute.GET("", s.caseList)
		caseRoute.POST("", s.caseCreate)
		caseRoute.PUT("/:caseID", s.caseUpdate)
		caseRoute.DELETE("", s.caseDelete)
		caseRoute.POST("/:caseID/advisory", s.caseAdvisory)
	}

	weightRoute := authedRoute.Group("/weights")
	{
		weightRoute.GET("", s.weightTableGet)
		weightRoute.PUT("", s.adminMiddleware(), s.weightTableReplace)
	}

	exportRoute := authedRoute.Group("/export")
	{
		exportRoute.GET("/csv", s.exportCSV)
		exportRoute.GET("/dump", s.exportDump)
	}
	authedRoute.POST("/import", s.importDump)

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "Triage 0.1",
			"sync_state":     s.repo.SyncState(),
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
