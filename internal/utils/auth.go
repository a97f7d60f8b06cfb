package utils

import (
  "fmt"
  "regexp"

  "golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateRegistrationInput(username, email, password string) error {
  if username == "" || email == "" || password == "" {
    return fmt.Errorf("username, email and password are required")
  }
  if !emailRegex.MatchString(email) {
    return fmt.Errorf("invalid email format")
  }
  if len(password) < 6 {
    return fmt.Errorf("password must be at least 6 characters long")
  }
  return nil
}

func ValidateLoginInput(email, password string) error {
  if email == "" {
    return fmt.Errorf("email is required to login")
  }
  if password == "" {
    return fmt.Errorf("password is required to login")
  }
  return nil
}

func HashPassword(password string) (string, error) {
  hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
  if err != nil {
    return "", fmt.Errorf("failed to hash password")
  }
  return string(hashed), nil
}
