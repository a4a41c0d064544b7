package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Roles conocidos del sistema.
const (
	RolAdministrator  = "administrator"
	RolAdviser        = "adviser"
	RolUserTrabajador = "user_trabajador"
)

// Roles es el conjunto de roles de un usuario. Se persiste como JSON.
type Roles []string

// Has indica si el conjunto contiene el rol dado.
func (r Roles) Has(rol string) bool {
	for _, x := range r {
		if x == rol {
			return true
		}
	}
	return false
}

// IsAdmin indica si el usuario es administrador.
func (r Roles) IsAdmin() bool { return r.Has(RolAdministrator) }

// IsAdviser indica si el usuario es asesor.
func (r Roles) IsAdviser() bool { return r.Has(RolAdviser) }

func (r Roles) Value() (driver.Value, error) {
	if r == nil {
		r = Roles{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Roles) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = Roles{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("tipo no soportado para Roles: %T", src)
	}
}

type UserModel struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email    string `json:"email" gorm:"type:varchar(150);uniqueIndex"`
	Password string `json:"-" gorm:"type:varchar(100);not null"`
	Roles    Roles  `json:"roles" gorm:"type:text"`
}

func (UserModel) TableName() string { return "users" }

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Roles    Roles  `json:"roles"`
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    Roles  `json:"roles"`
}
