package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docuforge/docuforge/internal/entity"
)

type chatRequest struct {
	Message      string `json:"message" binding:"required"`
	DocumentUUID string `json:"document_uuid"`
}

func (s *Server) handleChatHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	msgs, err := s.chat.History(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	if msgs == nil {
		msgs = []*entity.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// handleChatMessage stores the user turn, answers it against the
// referenced document (or replies with guidance when none is given),
// and stores the assistant turn.
func (s *Server) handleChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	userID := currentUserID(c)

	var doc *entity.Document
	if req.DocumentUUID != "" {
		docUUID, err := uuid.Parse(req.DocumentUUID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
			return
		}
		if doc, err = s.documents.GetByUUID(c.Request.Context(), userID, docUUID); err != nil {
			handleError(c, err)
			return
		}
	}

	var docID int64
	if doc != nil {
		docID = doc.ID
	}
	if _, err := s.chat.Append(c.Request.Context(), userID, docID, "user", req.Message); err != nil {
		handleError(c, err)
		return
	}

	reply := "Upload a document and reference it to ask questions about its content."
	if doc != nil {
		res := s.orch.Ask(c.Request.Context(), userID, doc.ID, doc.ExtractedText, req.Message)
		if res.Success {
			reply = res.Answer
		} else {
			reply = "I could not answer that: " + res.Err
		}
	}

	msg, err := s.chat.Append(c.Request.Context(), userID, docID, "assistant", reply)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
