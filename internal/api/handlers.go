package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/zoubayerBS/myrepository-sub000/internal/database"
	"github.com/zoubayerBS/myrepository-sub000/internal/types"
)

const shiftDateLayout = "2006-01-02"

type CreateShiftRequest struct {
	Category string `json:"category"`
	Slot     string `json:"slot"`
	Date     string `json:"date"`
	Comment  string `json:"comment"`
}

type UpdateShiftStatusRequest struct {
	Id      string `json:"id"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

type CreateConversationRequest struct {
	Subject        string   `json:"subject"`
	ParticipantIds []string `json:"participant_ids"`
}

func (s *VacationApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *VacationApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *VacationApp) account(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.db.GetAccountById(userId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, types.User{
		Id:           user.Id,
		Username:     user.Username,
		EmailAddress: user.EmailAddress,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
}

func (s *VacationApp) createShift(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Category == "" || req.Slot == "" || req.Date == "" {
		errResp := NewBadRequestError("category, slot and date are required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	date, err := time.Parse(shiftDateLayout, req.Date)
	if err != nil {
		errResp := NewBadRequestError("invalid date")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// the amount is never taken from the client, it always comes from
	// the rate card
	rate, err := s.db.GetRate(req.Category, req.Slot)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewBadRequestError("no rate for category and slot")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	sid, err := s.generateShortId()
	if err != nil {
		s.log.Print("generateShortId:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	newShift, err := s.db.CreateShift(database.CreateShiftParams{
		ExternalId: sid,
		UserId:     userId,
		Category:   req.Category,
		Slot:       req.Slot,
		Date:       date,
		Amount:     rate.Amount,
		Comment:    req.Comment,
	})
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, toShift(newShift))
}

func (s *VacationApp) listShifts(w http.ResponseWriter, r *http.Request) {
	var filter database.ShiftFilter

	if status := r.URL.Query().Get("status"); status != "" {
		if !slices.Contains([]string{types.ShiftStatusPending, types.ShiftStatusValidated, types.ShiftStatusRefused}, status) {
			errResp := NewBadRequestError("invalid status")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
		filter.Status = status
	}

	filter.UserId = r.URL.Query().Get("user_id")

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(shiftDateLayout, from)
		if err != nil {
			errResp := NewBadRequestError("invalid from date")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
		filter.From = t
	}

	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(shiftDateLayout, to)
		if err != nil {
			errResp := NewBadRequestError("invalid to date")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
		filter.To = t
	}

	dbShifts, err := s.db.ListShifts(filter)
	if err != nil {
		s.log.Println("list shifts:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	shifts := make([]types.Shift, 0, len(dbShifts))
	for _, dbShift := range dbShifts {
		shifts = append(shifts, toShift(dbShift))
	}

	s.writeJson(w, http.StatusOK, shifts)
}

func (s *VacationApp) updateShiftStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateShiftStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Id == "" {
		errResp := NewBadRequestError("id is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Status != types.ShiftStatusValidated && req.Status != types.ShiftStatusRefused {
		errResp := NewBadRequestError("status must be validated or refused")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	shift, err := s.db.GetShiftByExternalId(req.Id)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// a shift is decided exactly once
	if shift.Status != types.ShiftStatusPending {
		errResp := NewConflictError("shift already " + shift.Status)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	updated, err := s.db.UpdateShiftStatus(database.UpdateShiftStatusParams{
		ShiftId: shift.Id,
		Status:  req.Status,
		Comment: req.Comment,
	})
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, toShift(updated))
}

func (s *VacationApp) listRates(w http.ResponseWriter, r *http.Request) {
	dbRates, err := s.db.ListRates()
	if err != nil {
		s.log.Println("list rates:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	rates := make([]types.Rate, 0, len(dbRates))
	for _, dbRate := range dbRates {
		rates = append(rates, types.Rate{
			Category: dbRate.Category,
			Slot:     dbRate.Slot,
			Amount:   dbRate.Amount,
		})
	}

	s.writeJson(w, http.StatusOK, rates)
}

func (s *VacationApp) createConversation(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if len(req.ParticipantIds) == 0 {
		errResp := NewBadRequestError("participant_ids is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	participantIds := req.ParticipantIds
	if !slices.Contains(participantIds, userId) {
		participantIds = append(participantIds, userId)
	}

	sid, err := s.generateShortId()
	if err != nil {
		s.log.Print("generateShortId:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	newConv, err := s.db.CreateConversation(database.CreateConversationParams{
		ExternalId:     sid,
		Subject:        req.Subject,
		ParticipantIds: participantIds,
	})
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, types.Conversation{
		Id:         newConv.Id,
		ExternalId: newConv.ExternalId,
		Subject:    newConv.Subject,
		CreatedAt:  newConv.CreatedAt,
		UpdatedAt:  newConv.UpdatedAt,
	})
}

func (s *VacationApp) listConversations(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbConvs, err := s.db.ListConversations(userId)
	if err != nil {
		s.log.Println("list conversations:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	convs := make([]types.Conversation, 0, len(dbConvs))
	for _, dbConv := range dbConvs {
		convs = append(convs, types.Conversation{
			Id:            dbConv.Id,
			ExternalId:    dbConv.ExternalId,
			Subject:       dbConv.Subject,
			LastMessageAt: dbConv.LastMessageAt,
			CreatedAt:     dbConv.CreatedAt,
			UpdatedAt:     dbConv.UpdatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, convs)
}

func (s *VacationApp) getMessages(w http.ResponseWriter, r *http.Request) {
	externalId := r.URL.Query().Get("conversation_id")
	if externalId == "" {
		errResp := NewBadRequestError("conversation_id is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if _, err := s.db.GetConversationByExternalId(externalId); err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var limit int
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			errResp := NewBadRequestError("invalid limit")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
	}

	before := r.URL.Query().Get("before")

	dbMsgs, err := s.db.GetChatMessages(externalId, before, limit)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	msgs := make([]types.ChatMessage, 0, len(dbMsgs))
	for _, m := range dbMsgs {
		msgs = append(msgs, types.ChatMessage{
			Id:             m.Id,
			ConversationId: m.ConversationId,
			SenderId:       m.SenderId,
			SenderName:     m.SenderName,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, msgs)
}

func toShift(s database.Shift) types.Shift {
	return types.Shift{
		Id:         s.Id,
		ExternalId: s.ExternalId,
		UserId:     s.UserId,
		Category:   s.Category,
		Slot:       s.Slot,
		Date:       s.Date,
		Status:     s.Status,
		Amount:     s.Amount,
		Comment:    s.Comment,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
