package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinsync/triage-api/interchange"
)

// exportCSV is the API for downloading the flat tabular rendering of the
// case collection
func (s *Server) exportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="cases.csv"`)

	if err := interchange.WriteCSV(c.Writer, s.repo.Cases()); err != nil {
		log.WithError(err).Error("write csv export")
	}
}

// exportDump is the API for downloading the structured full-fidelity dump
func (s *Server) exportDump(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="cases.json"`)

	if err := interchange.WriteDump(c.Writer, s.repo.Cases()); err != nil {
		log.WithError(err).Error("write dump export")
	}
}

// importDump is the API for applying a structured dump from another
// deployment. Records with ids already present are silently discarded in
// favor of the existing ones; a malformed payload applies nothing.
func (s *Server) importDump(c *gin.Context) {
	records, err := interchange.ParseDump(c.Request.Body)
	if err != nil {
		var formatErr *interchange.ImportFormatError
		if errors.As(err, &formatErr) {
			abortWithEncoding(c, http.StatusBadRequest, errorImportFormat, err)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	inserted, done := s.repo.MergeIncoming(records)
	if err := <-done; err != nil {
		log.WithError(err).Warn("import write not durable yet")
		c.JSON(http.StatusOK, gin.H{
			"inserted": inserted,
			"warning":  errorSyncWrite,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inserted": inserted,
	})
}
