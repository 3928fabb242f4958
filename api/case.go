package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinsync/triage-api/repo"
	"github.com/clinsync/triage-api/schema"
	"github.com/clinsync/triage-api/score"
)

type casePayload struct {
	Subject      schema.Subject      `json:"subject"`
	Observations schema.Observations `json:"observations"`
}

// caseList is the API for reading the case collection, newest first
func (s *Server) caseList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"result": s.repo.Cases(),
	})
}

// caseCreate is the API for submitting a new case. The classification
// snapshot is computed here, against the weight table in effect right now,
// and stored on the record.
func (s *Server) caseCreate(c *gin.Context) {
	var params casePayload
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := repo.ValidateSubject(params.Subject); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorValidation, err)
		return
	}

	record := s.buildRecord(schema.NewCaseID(), c.GetString("requester"), time.Now().Unix(), params)

	done := s.repo.PutCase(record)
	s.respondWithWriteResult(c, record, done)
}

// caseUpdate is the API for replacing a case wholesale. Creator and creation
// time are kept from the stored record; everything else, including the
// classification snapshot, is recomputed from the submitted payload.
func (s *Server) caseUpdate(c *gin.Context) {
	id := c.Param("caseID")

	existing, ok := s.repo.Case(id)
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCase)
		return
	}

	var params casePayload
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := repo.ValidateSubject(params.Subject); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorValidation, err)
		return
	}

	record := s.buildRecord(id, existing.CreatorID, existing.CreatedAt, params)

	done := s.repo.UpdateCase(id, record)
	s.respondWithWriteResult(c, record, done)
}

// caseDelete is the API for removing cases by id set
func (s *Server) caseDelete(c *gin.Context) {
	var params struct {
		IDs []string `json:"ids"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}
	if len(params.IDs) == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	done := s.repo.DeleteCases(params.IDs)
	if err := <-done; err != nil {
		c.JSON(http.StatusOK, gin.H{"result": "OK", "warning": errorSyncWrite})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

func (s *Server) buildRecord(id, creatorID string, createdAt int64, params casePayload) schema.CaseRecord {
	subject := params.Subject
	subject.BMI = subject.ComputeBMI()

	result := score.Classify(subject, params.Observations, s.repo.WeightTable())

	return schema.CaseRecord{
		ID:             id,
		Subject:        subject,
		Observations:   params.Observations,
		Score:          result.Score,
		Category:       result.Category,
		Recommendation: result.Recommendation,
		CreatorID:      creatorID,
		CreatedAt:      createdAt,
	}
}

// respondWithWriteResult reports the optimistic mutation as succeeded either
// way; a failed remote write is attached as a warning, since local state is
// kept and the caller may retry or reload.
func (s *Server) respondWithWriteResult(c *gin.Context, record schema.CaseRecord, done <-chan error) {
	if err := <-done; err != nil {
		log.WithError(err).Warn("case write not durable yet")
		c.JSON(http.StatusOK, gin.H{
			"result":  record,
			"warning": errorSyncWrite,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": record,
	})
}
