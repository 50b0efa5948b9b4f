package update_reservation_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status    string  `json:"status"`
	OwnerNote *string `json:"ownerNote,omitempty"` // Причина отказа или отмены
}
