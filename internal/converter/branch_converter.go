package converter

import (
	"optical-clinic-api/internal/delivery/dto"
	"optical-clinic-api/internal/domain/entity"
)

// BranchToResponse converts a Branch entity to BranchResponse DTO
func BranchToResponse(branch *entity.Branch) *dto.BranchResponse {
	if branch == nil {
		return nil
	}

	response := &dto.BranchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		Address:   branch.Address,
		Phone:     branch.Phone,
		ManagerID: branch.ManagerID,
		IsActive:  branch.IsActive,
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}

	if branch.Manager != nil {
		response.ManagerName = branch.Manager.FullName
	}

	return response
}

// BranchesToResponses converts a slice of Branch entities to slice of BranchResponse DTOs
func BranchesToResponses(branches []entity.Branch) []dto.BranchResponse {
	responses := make([]dto.BranchResponse, len(branches))
	for i, branch := range branches {
		resp := BranchToResponse(&branch)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
