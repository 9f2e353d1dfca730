// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

import (
	"context"
	"errors"
	"net/http"
)

type AuthService service

// Login signs in and stores the token and user on the client session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, *Response, error) {
	if email == "" || password == "" {
		return nil, nil, errors.New("safeplots: email and password are required")
	}
	body := map[string]string{"email": email, "password": password}
	out := new(LoginResult)
	rs, err := s.client.do(withoutAuth(ctx), http.MethodPost, "/auth/login", body, out)
	if err != nil {
		return nil, rs, err
	}
	s.client.Session.Set(out.Token, &out.User)
	return out, rs, nil
}

// Register creates an account. The account usually needs OTP verification
// before it can sign in.
func (s *AuthService) Register(ctx context.Context, in *RegisterRequest) (*User, *Response, error) {
	out := new(User)
	rs, err := s.client.do(withoutAuth(ctx), http.MethodPost, "/auth/register", in, out)
	if err != nil {
		return nil, rs, err
	}
	return out, rs, nil
}

// VerifyOTP confirms a registration code and signs the user in.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*LoginResult, *Response, error) {
	body := map[string]string{"email": email, "otp": otp}
	out := new(LoginResult)
	rs, err := s.client.do(withoutAuth(ctx), http.MethodPost, "/auth/verify-otp", body, out)
	if err != nil {
		return nil, rs, err
	}
	if out.Token != "" {
		s.client.Session.Set(out.Token, &out.User)
	}
	return out, rs, nil
}

func (s *AuthService) SendOTP(ctx context.Context, email string) (*Response, error) {
	return s.client.do(withoutAuth(ctx), http.MethodPost, "/auth/send-otp", map[string]string{"email": email}, nil)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*Response, error) {
	return s.client.do(withoutAuth(ctx), http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (*Response, error) {
	body := map[string]string{"token": token, "password": password}
	return s.client.do(withoutAuth(ctx), http.MethodPost, "/auth/reset-password", body, nil)
}

func (s *AuthService) ChangePassword(ctx context.Context, current, next string) (*Response, error) {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return s.client.do(ctx, http.MethodPost, "/auth/change-password", body, nil)
}

// Logout forgets the local session. The API keeps no server-side session.
func (s *AuthService) Logout() { s.client.Session.Clear() }
