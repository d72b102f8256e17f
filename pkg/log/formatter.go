package log

import "github.com/sirupsen/logrus"

// silentFormatter 아무런 동작도 하지 않는 포맷터입니다.
// 출력이 io.Discard여도 logrus는 포맷팅을 수행하므로, 실제 포맷팅은 hook에 맡기고 여기서는 건너뜁니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}
