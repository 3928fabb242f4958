package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinsync/triage-api/schema"
	"github.com/clinsync/triage-api/store"
)

// accountRegister is the API for registering a new operator account. The
// account starts unapproved and cannot sign in until an administrator
// approves it.
func (s *Server) accountRegister(c *gin.Context) {
	logger := log.WithField("api", "accountRegister")

	var params struct {
		Username   string `json:"username"`
		Credential string `json:"credential"`
	}

	if err := c.BindJSON(&params); err != nil {
		logger.WithError(err).Error(errorInvalidParameters.Message)
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if params.Username == "" || len(params.Credential) < 8 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Credential), bcrypt.DefaultCost)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	account := schema.UserAccount{
		ID:         uuid.New().String(),
		Username:   params.Username,
		Credential: string(hash),
		Role:       schema.RoleOperator,
		Approved:   false,
		Active:     true,
		CreatedAt:  time.Now().Unix(),
	}

	if err := s.store.CreateAccount(account); err != nil {
		if err == store.ErrUsernameTaken {
			abortWithEncoding(c, http.StatusForbidden, errorAccountTaken)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": account,
	})
}

// accountList is the API for administrators to query the full roster
func (s *Server) accountList(c *gin.Context) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": accounts,
	})
}

// accountUpdate is the API for administrators to approve an account or to
// change its role, active flag or credential
func (s *Server) accountUpdate(c *gin.Context) {
	var params struct {
		Approved   *bool   `json:"approved"`
		Active     *bool   `json:"active"`
		Role       *string `json:"role"`
		Credential *string `json:"credential"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	account, err := s.store.GetAccount(c.Param("accountID"))
	if err != nil {
		abortWithEncoding(c, http.StatusNotFound, errorAccountNotFound)
		return
	}

	if params.Approved != nil {
		account.Approved = *params.Approved
	}
	if params.Active != nil {
		account.Active = *params.Active
	}
	if params.Role != nil {
		role := schema.Role(*params.Role)
		if role != schema.RoleOperator && role != schema.RoleAdministrator {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		account.Role = role
	}
	if params.Credential != nil {
		if len(*params.Credential) < 8 {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Credential), bcrypt.DefaultCost)
		if err != nil {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
			return
		}
		account.Credential = string(hash)
	}

	if err := s.store.UpdateAccount(*account); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

// accountDelete is the API for administrators to remove an account
func (s *Server) accountDelete(c *gin.Context) {
	if err := s.store.DeleteAccount(c.Param("accountID")); err != nil {
		if err == store.ErrAccountNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorAccountNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
