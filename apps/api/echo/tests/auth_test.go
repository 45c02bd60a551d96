package tests

import (
	"net/http"
	"testing"
)

func TestAuthAPI_Login(t *testing.T) {
	app := setup(t)
	tests := []httpTest{
		{
			name:     "admin",
			body:     []byte(`{"email": "admin@example.com", "password": "admin123"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"email": "admin@example.com", "name": "Admin", "role": "admin", "destination": "/admin"}`),
		},
		{
			name:     "teacher",
			body:     []byte(`{"email": "teacher@example.com", "password": "teacher123"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"email": "teacher@example.com", "name": "Teacher", "role": "teacher", "destination": "/home"}`),
		},
		{
			name:     "student",
			body:     []byte(`{"email": "student@example.com", "password": "student123"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"email": "student@example.com", "name": "Student", "role": "student", "destination": "/dashboard"}`),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"email": "admin@example.com", "password": "nope"}`),
			wantCode: http.StatusUnauthorized,
			wantData: []byte(`{"detail": "invalid email or password"}`),
		},
		{
			name:     "missing fields",
			body:     []byte(`{}`),
			wantCode: http.StatusUnprocessableEntity,
			wantData: []byte(`{"detail": [
				{"loc": ["body", "email"], "msg": "this field is required", "type": "value_error"},
				{"loc": ["body", "password"], "msg": "this field is required", "type": "value_error"}
			]}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(http.MethodPost, "/auth/login", tt.body))
		})
	}
}
