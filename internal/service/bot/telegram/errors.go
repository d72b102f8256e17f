package telegram

import (
	apperrors "github.com/darkkaiser/listing-bot/internal/pkg/errors"
)

func newErrInvalidChatID(id string, err error) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "잘못된 텔레그램 채팅 ID입니다: %s", id)
}

func newErrInvalidMessageID(id string, err error) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "잘못된 텔레그램 메시지 ID입니다: %s", id)
}
