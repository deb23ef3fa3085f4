package models

import "github.com/AkhmadOnline/transport-catalogue/internal/clock"

// ResponseModel is the envelope of every API answer.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Data        any    `json:"data,omitempty"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

type EntryData struct {
	Entry      any             `json:"entry"`
	References ReferencesModel `json:"references"`
}

type ListData struct {
	LimitExceeded bool            `json:"limitExceeded"`
	List          any             `json:"list"`
	References    ReferencesModel `json:"references"`
}

func ResponseCurrentTime(c clock.Clock) int64 {
	return c.NowUnixMilli()
}

func NewOKResponse(data any, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(c),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

func NewEntryResponse(entry any, references ReferencesModel, c clock.Clock) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry, References: references}, c)
}

func NewListResponse(list any, references ReferencesModel, limitExceeded bool, c clock.Clock) ResponseModel {
	return NewOKResponse(ListData{LimitExceeded: limitExceeded, List: list, References: references}, c)
}
