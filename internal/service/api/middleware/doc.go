// Package middleware API 서버에서 사용하는 Echo 미들웨어를 제공합니다.
//
// 등록 순서는 http_server.go의 NewHTTPServer를 따릅니다.
// PanicRecovery가 가장 바깥에 위치해야 이후 미들웨어의 panic까지 복구할 수 있습니다.
package middleware
