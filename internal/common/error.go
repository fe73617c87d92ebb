package common

import (
	"errors"
	"fmt"
)

type ErrNo struct {
	ErrCode int    `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
}

const (
	SuccessCode     = 0
	ServiceErr      = iota + 10000
	RequestInvalid
	TokenInvalid
	PasswordErr
	UserNotExists
	YamlInvalid
	WorkflowNotExists
	WorkflowExists
	WorkflowStartFail
	ScheduleInvalid
	EventInvalid
	GetHistoryFail
	GetHistoryDetailFail
	WebhookInvalid
)

var errorMsg = map[int]string{
	SuccessCode:          "success",
	ServiceErr:           "service error",
	RequestInvalid:       "request invalid",
	TokenInvalid:         "token invalid",
	PasswordErr:          "password error",
	UserNotExists:        "user not exists",
	YamlInvalid:          "yaml invalid",
	WorkflowNotExists:    "workflow not exists",
	WorkflowExists:       "workflow already exists",
	WorkflowStartFail:    "workflow starts fail",
	ScheduleInvalid:      "schedule invalid",
	EventInvalid:         "event invalid",
	GetHistoryFail:       "get history fail",
	GetHistoryDetailFail: "get history detail fail",
	WebhookInvalid:       "webhook invalid",
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(errCode int) error {
	return ErrNo{
		ErrCode: errCode,
		ErrMsg:  errorMsg[errCode],
	}
}

func ConvertErr(err error) ErrNo {
	e := ErrNo{}
	if errors.As(err, &e) {
		return e
	}
	e = ErrNo{
		ErrCode: ServiceErr,
		ErrMsg:  err.Error(),
	}
	return e
}
