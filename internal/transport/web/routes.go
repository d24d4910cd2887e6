package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avstrong/hotel/internal/booking"
)

type roomRequest struct {
	RoomType      string `json:"room_type"`
	PricePerNight *int   `json:"price_per_night"`
}

type userRequest struct {
	Balance *int `json:"balance"`
}

type bookingRequest struct {
	UserID     *int   `json:"user_id"`
	RoomNumber *int   `json:"room_number"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

type errorResponse struct {
	Error             string `json:"error"`
	Required          *int   `json:"required,omitempty"`
	Available         *int   `json:"available,omitempty"`
	ConflictBookingID *int   `json:"conflicting_booking_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		http.Error(w, fmt.Sprintf("%s must be an integer", name), http.StatusBadRequest)

		return 0, false
	}

	return v, true
}

func (s *Server) setRoomHandler(w http.ResponseWriter, r *http.Request) {
	number, ok := pathInt(w, r, "number")
	if !ok {
		return
	}

	var req roomRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	fields := map[string][]string{}

	roomType, err := booking.ParseRoomType(req.RoomType)
	if err != nil {
		fields["room_type"] = append(fields["room_type"], err.Error())
	}

	if req.PricePerNight == nil {
		fields["price_per_night"] = append(fields["price_per_night"], "provide price_per_night")
	}

	if len(fields) > 0 {
		s.writeJSON(w, http.StatusBadRequest, fields)

		return
	}

	if err := s.bManager.SetRoom(r.Context(), number, roomType, *req.PricePerNight); err != nil {
		s.writeBookingError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req userRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	if req.Balance == nil {
		s.writeJSON(w, http.StatusBadRequest, map[string][]string{"balance": {"provide balance"}})

		return
	}

	if err := s.bManager.SetUser(r.Context(), id, *req.Balance); err != nil {
		s.writeBookingError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) bookRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	fields := map[string][]string{}

	if req.UserID == nil {
		fields["user_id"] = append(fields["user_id"], "provide user_id")
	}

	if req.RoomNumber == nil {
		fields["room_number"] = append(fields["room_number"], "provide room_number")
	}

	checkIn, err := time.Parse(time.DateOnly, req.CheckIn)
	if err != nil {
		fields["check_in"] = append(fields["check_in"], "check_in must be a YYYY-MM-DD date")
	}

	checkOut, err := time.Parse(time.DateOnly, req.CheckOut)
	if err != nil {
		fields["check_out"] = append(fields["check_out"], "check_out must be a YYYY-MM-DD date")
	}

	if len(fields) > 0 {
		s.writeJSON(w, http.StatusBadRequest, fields)

		return
	}

	out, err := s.bManager.BookRoom(r.Context(), *req.UserID, *req.RoomNumber, checkIn, checkOut)
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) writeBookingError(w http.ResponseWriter, err error) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		s.writeJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	if dateErr := booking.IsInvalidDateRangeError(err); dateErr != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: dateErr.Error()}) //nolint:exhaustruct

		return
	}

	if roomErr := booking.IsRoomNotFoundError(err); roomErr != nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: roomErr.Error()}) //nolint:exhaustruct

		return
	}

	if userErr := booking.IsUserNotFoundError(err); userErr != nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: userErr.Error()}) //nolint:exhaustruct

		return
	}

	if unavailableErr := booking.IsRoomUnavailableError(err); unavailableErr != nil {
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusConflict, errorResponse{
			Error:             unavailableErr.Error(),
			ConflictBookingID: &unavailableErr.Conflict.ID,
		})

		return
	}

	if balanceErr := booking.IsInsufficientBalanceError(err); balanceErr != nil {
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusPaymentRequired, errorResponse{
			Error:     balanceErr.Error(),
			Required:  &balanceErr.Required,
			Available: &balanceErr.Available,
		})

		return
	}

	s.l.LogErrorf("Could not process ledger request: %v", err.Error())
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.bManager.ListRooms(r.Context())
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.bManager.ListUsers(r.Context())
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bManager.ListBookings(r.Context())
	if err != nil {
		s.writeBookingError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"PUT /api/rooms/v1/{number}": s.setRoomHandler,
		"PUT /api/users/v1/{id}":     s.setUserHandler,
		"POST /api/bookings/v1":      s.bookRoomHandler,
		"GET /api/rooms/v1":          s.listRoomsHandler,
		"GET /api/users/v1":          s.listUsersHandler,
		"GET /api/bookings/v1":       s.listBookingsHandler,
	}

	routes[fmt.Sprintf("GET %s", s.conf.LivenessEndpoint)] = s.livenessHandler

	for pattern, handler := range routes {
		r.Handle(
			pattern,
			s.applyMiddlewares(handler, s.rateLimitMiddleware(), s.loggerMiddleware(), s.recoverMiddleware()),
		)
	}
}
