package entities

import "time"

type UserType string

const (
	UserTypeFarmer   UserType = "farmer"
	UserTypeCustomer UserType = "customer"
)

func (t UserType) Valid() bool {
	return t == UserTypeFarmer || t == UserTypeCustomer
}

// User represents a marketplace account, either a farmer or a customer.
// Password holds whatever the configured password mode stored and is never serialized.
type User struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	UserType  UserType  `gorm:"type:varchar(16);not null" json:"userType"`
	Name      string    `gorm:"not null" json:"name"`
	FarmerID  *string   `gorm:"type:varchar(36)" json:"farmerId"` // farmers only
	FarmName  *string   `json:"farmName"`
	FarmSize  *int      `json:"farmSize"` // acres
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	ZipCode   *string   `json:"zipCode"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// UserPublic is the projection handed back on login.
type UserPublic struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	UserType UserType `json:"userType"`
	Name     string   `json:"name"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		UserType: u.UserType,
		Name:     u.Name,
	}
}

// UserPatch lists the profile fields that can change after registration.
// Username, email, password and user type are fixed.
type UserPatch struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	ZipCode  *string `json:"zipCode"`
	FarmName *string `json:"farmName"`
	FarmSize *int    `json:"farmSize"`
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.Address != nil {
		u.Address = p.Address
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.State != nil {
		u.State = p.State
	}
	if p.ZipCode != nil {
		u.ZipCode = p.ZipCode
	}
	if p.FarmName != nil {
		u.FarmName = p.FarmName
	}
	if p.FarmSize != nil {
		u.FarmSize = p.FarmSize
	}
}
