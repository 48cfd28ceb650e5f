// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"strings"

	"approval-workflow/internal/entities"
	"approval-workflow/internal/transport/http/dto"
)

// FromCreateRequestBody builds the engine input from a transport payload.
func FromCreateRequestBody(src dto.CreateRequestBody) entities.CreateRequestInput {
	return entities.CreateRequestInput{
		Title:         strings.TrimSpace(src.Title),
		Description:   src.Description,
		RequesterID:   src.RequesterID,
		ApproverID:    src.ApproverID,
		RequestTypeID: src.RequestTypeID,
	}
}

// ToSummary maps entities.RequestSummary to transport model.
func ToSummary(s entities.RequestSummary) dto.RequestSummary {
	return dto.RequestSummary{
		ID:              s.ID,
		Title:           s.Title,
		Status:          string(s.Status),
		TypeName:        s.TypeName,
		CreatedAt:       s.CreatedAt,
		RelatedUserName: s.RelatedUserName,
	}
}

// ToSummaryList maps a slice of entities.RequestSummary to transport slice.
func ToSummaryList(list []entities.RequestSummary) []dto.RequestSummary {
	res := make([]dto.RequestSummary, 0, len(list))
	for _, s := range list {
		res = append(res, ToSummary(s))
	}
	return res
}

// ToDetails maps entities.RequestDetails to transport model.
func ToDetails(d entities.RequestDetails) dto.RequestDetails {
	return dto.RequestDetails{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		Status:          string(d.Status),
		TypeName:        d.TypeName,
		CreatedAt:       d.CreatedAt,
		RelatedUserName: d.RelatedUserName,
		Comments:        d.Comments,
	}
}

// ToUserList maps the user directory to transport slice.
func ToUserList(list []entities.User) []dto.User {
	res := make([]dto.User, 0, len(list))
	for _, u := range list {
		res = append(res, dto.User{
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Email:    u.Email,
		})
	}
	return res
}

// ToRequestTypeList maps the request-type catalog to transport slice.
func ToRequestTypeList(list []entities.RequestType) []dto.RequestType {
	res := make([]dto.RequestType, 0, len(list))
	for _, rt := range list {
		res = append(res, dto.RequestType{
			ID:          rt.ID,
			Name:        rt.Name,
			Description: rt.Description,
		})
	}
	return res
}
