package entity

import "time"

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminSession - право доступа к разделу администратора. Бинарное: либо есть, либо нет.
type AdminSession struct {
	Authenticated bool       `json:"authenticated"`
	Since         *time.Time `json:"since,omitempty"`
}
