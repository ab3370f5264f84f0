package models

import "time"

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CPF       string    `gorm:"column:cpf;type:varchar(14);not null;uniqueIndex" json:"cpf"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Address *Address `gorm:"foreignKey:ClientID" json:"address,omitempty"`
	Phone   *Phone   `gorm:"foreignKey:ClientID" json:"phone,omitempty"`
	Sales   []Sale   `gorm:"foreignKey:ClientID" json:"sales,omitempty"`
}

func (Client) TableName() string { return "clients" }

// Un cliente tiene a lo más una dirección (uniqueIndex sobre client_id).
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"column:client_id;not null;uniqueIndex" json:"client_id"`
	Street    string    `gorm:"type:varchar(255)" json:"street"`
	Number    string    `gorm:"type:varchar(20)" json:"number"`
	City      string    `gorm:"type:varchar(255)" json:"city"`
	State     string    `gorm:"type:varchar(2)" json:"state"`
	ZipCode   string    `gorm:"column:zip_code;type:varchar(9)" json:"zip_code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Address) TableName() string { return "addresses" }

type Phone struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"column:client_id;not null;uniqueIndex" json:"client_id"`
	Number    string    `gorm:"type:varchar(15)" json:"number"`
	AreaCode  string    `gorm:"column:area_code;type:varchar(3)" json:"area_code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Phone) TableName() string { return "phones" }
