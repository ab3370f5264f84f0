package dto

import "time"

type AddressDto struct {
	Street  string `json:"street" validate:"omitempty,max=255"`
	Number  string `json:"number" validate:"omitempty,max=20"`
	City    string `json:"city" validate:"omitempty,max=255"`
	State   string `json:"state" validate:"omitempty,len=2"`
	ZipCode string `json:"zip_code" validate:"omitempty,cep"`
}

type PhoneDto struct {
	Number   string `json:"number" validate:"omitempty,max=15"`
	AreaCode string `json:"area_code" validate:"omitempty,max=3"`
}

type CreateClientDto struct {
	Name    string      `json:"name" validate:"required,max=255"`
	CPF     string      `json:"cpf" validate:"required,cpf"`
	Address *AddressDto `json:"address" validate:"required"`
	Phone   *PhoneDto   `json:"phone" validate:"required"`
}

// UpdateClientDto carries only the keys present in the request; nil
// means "leave untouched". At least one field must be set.
type UpdateClientDto struct {
	Name    *string           `json:"name" validate:"omitempty,max=255"`
	CPF     *string           `json:"cpf" validate:"omitempty,cpf"`
	Address *UpdateAddressDto `json:"address"`
	Phone   *UpdatePhoneDto   `json:"phone"`
}

type UpdateAddressDto struct {
	Street  *string `json:"street" validate:"omitempty,max=255"`
	Number  *string `json:"number" validate:"omitempty,max=20"`
	City    *string `json:"city" validate:"omitempty,max=255"`
	State   *string `json:"state" validate:"omitempty,len=2"`
	ZipCode *string `json:"zip_code" validate:"omitempty,cep"`
}

type UpdatePhoneDto struct {
	Number   *string `json:"number" validate:"omitempty,max=15"`
	AreaCode *string `json:"area_code" validate:"omitempty,max=3"`
}

func (d UpdateClientDto) Empty() bool {
	return d.Name == nil && d.CPF == nil && d.Address == nil && d.Phone == nil
}

type ClientListDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

type ClientDetailDto struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	CPF       string      `json:"cpf"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Address   *AddressDto `json:"address"`
	Phone     *PhoneDto   `json:"phone"`
	Sales     []SaleDto   `json:"sales"`
}

// SalesFilter applies only when both month and year are present.
type SalesFilter struct {
	Month *int
	Year  *int
}

func (f SalesFilter) Active() bool {
	return f.Month != nil && f.Year != nil
}
