package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinsync/triage-api/schema"
)

// weightTableGet is the API for reading the weight table in effect
func (s *Server) weightTableGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"result": s.repo.WeightTable(),
	})
}

// weightTableReplace is the API for administrators to replace the weight
// table wholesale. There is no partial update and no version check:
// concurrent edits are last-writer-wins and converge through the change
// feed.
func (s *Server) weightTableReplace(c *gin.Context) {
	var table schema.WeightTable
	if err := c.BindJSON(&table); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if len(table.Categories) == 0 || len(table.Thresholds) == 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}
	for cat := range table.Categories {
		if !validCategory(cat) {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
	}

	done := s.repo.ReplaceWeightTable(table)
	if err := <-done; err != nil {
		log.WithError(err).Warn("weight table write not durable yet")
		c.JSON(http.StatusOK, gin.H{
			"result":  table,
			"warning": errorSyncWrite,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": table,
	})
}

func validCategory(cat schema.Category) bool {
	for _, known := range schema.Categories {
		if cat == known {
			return true
		}
	}
	return false
}
