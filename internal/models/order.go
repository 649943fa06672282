package models

// Order is an immutable snapshot of a completed checkout. User identity
// is denormalized by value at creation time, so there is no foreign key
// back to users and later account edits never change historical orders.
type Order struct {
	ID            uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserName      string `json:"user_name" gorm:"type:varchar(100)"`
	UserEmail     string `json:"user_email" gorm:"type:varchar(255)"`
	Items         string `json:"items"` // "shoes1 x2, shirt2 x1" in cart insertion order
	Total         int    `json:"total"`
	PaymentMethod string `json:"payment_method" gorm:"type:varchar(50)"`
	OrderTime     string `json:"order_time" gorm:"type:varchar(19)"` // "2006-01-02 15:04:05"
}
