package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// caseAdvisory is the API for requesting an advisory annotation for a stored
// case. The annotation is merged into the record but never changes the
// deterministic classification snapshot; a service failure leaves the case
// untouched and is reported inline.
func (s *Server) caseAdvisory(c *gin.Context) {
	record, ok := s.repo.Case(c.Param("caseID"))
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCase)
		return
	}

	report, err := s.advisoryClient.Annotate(record)
	if err != nil {
		abortWithEncoding(c, http.StatusBadGateway, errorAdvisoryService, err)
		return
	}

	record.Advisory = report

	done := s.repo.UpdateCase(record.ID, record)
	if err := <-done; err != nil {
		log.WithError(err).Warn("advisory write not durable yet")
		c.JSON(http.StatusOK, gin.H{
			"result":  report,
			"warning": errorSyncWrite,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": report,
	})
}
