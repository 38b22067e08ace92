package dto

import (
	"time"

	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/repository"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	OwnerID uint64 `json:"owner_id"`
	// Role is the strongest access path the viewer has into the company;
	// used only for display ordering.
	Role string `json:"role,omitempty"`
}

func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{ID: company.ID, Name: company.Name, OwnerID: company.OwnerID}
}

// ToCompanyAccessDTO maps a resolved access entry.
func ToCompanyAccessDTO(access repository.CompanyAccess) CompanyDTO {
	return CompanyDTO{
		ID:      access.Company.ID,
		Name:    access.Company.Name,
		OwnerID: access.Company.OwnerID,
		Role:    string(access.Role),
	}
}

// CompanyMemberDTO represents a member in API responses
type CompanyMemberDTO struct {
	User     UserDTO   `json:"user"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func ToCompanyMemberDTO(member models.CompanyMember) CompanyMemberDTO {
	return CompanyMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}
