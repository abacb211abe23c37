package auth

import (
	"errors"
	"log"

	"courtside/models/postgres"
	"courtside/services/apperrors"
	"courtside/services/phone"
	"courtside/services/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// RegisterInput carries the optional profile fields accepted at signup.
type RegisterInput struct {
	Phone     string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// Register creates an unverified account and hands a fresh verification
// code to the SMS dispatcher. SMS delivery is fire-and-forget: its failure
// never rolls back the registration.
func (s *AuthService) Register(in RegisterInput) (*postgres.User, error) {
	normalized := phone.Normalize(in.Phone)
	if err := phone.Validate(normalized); err != nil {
		return nil, err
	}

	// Positive existence-cache hit short-circuits before the store check.
	if s.Redis != nil && s.Redis.UserExists(normalized) {
		return nil, apperrors.ErrAlreadyExists
	}

	var count int64
	if err := s.DB.Model(&postgres.User{}).Where("phone = ?", normalized).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		if s.Redis != nil {
			s.Redis.MarkUserExists(normalized)
		}
		return nil, apperrors.ErrAlreadyExists
	}

	if len(in.Password) < minPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := postgres.User{
		Phone:        normalized,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// The unique index is the authority when two registrations race
		// past the cache.
		var after int64
		s.DB.Model(&postgres.User{}).Where("phone = ?", normalized).Count(&after)
		if after > 0 {
			return nil, apperrors.ErrAlreadyExists
		}
		return nil, err
	}

	if code, err := s.IssueCode(normalized); err != nil {
		log.Printf("auth: could not issue verification code for %s: %v", normalized, err)
	} else if s.SMS != nil {
		s.SMS.Dispatch(normalized, code)
	}

	log.Printf("auth: user created %s (%s)", user.ID, normalized)
	return &user, nil
}

// SendCode issues a fresh verification code for an existing unverified
// account. An unknown phone returns nil so callers answer identically and
// reveal nothing.
func (s *AuthService) SendCode(rawPhone string) error {
	normalized := phone.Normalize(rawPhone)

	user, err := s.GetUserByPhone(normalized)
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("auth: send-code attempt for unknown phone %s", normalized)
		return nil
	}
	if err != nil {
		return err
	}

	if user.IsPhoneVerified {
		return apperrors.ErrAlreadyVerified
	}

	code, err := s.IssueCode(normalized)
	if err != nil {
		return err
	}
	if s.SMS != nil {
		s.SMS.Dispatch(normalized, code)
	}
	return nil
}

// VerifyPhone redeems a code, marks the account verified and issues a
// credential pair for immediate login.
func (s *AuthService) VerifyPhone(rawPhone, code string) (*postgres.User, token.Pair, error) {
	normalized := phone.Normalize(rawPhone)

	user, err := s.redeemCode(normalized, code)
	if err != nil {
		return nil, token.Pair{}, err
	}

	pair, err := s.Tokens.IssuePair(user.ID, user.Phone, user.IsCoach)
	if err != nil {
		return nil, token.Pair{}, err
	}

	log.Printf("auth: phone verified %s", user.ID)
	return user, pair, nil
}

// Login checks credentials and returns a token pair. The lockout check runs
// before the password comparison so a locked account never leaks whether
// the supplied password was correct. Unknown phone and wrong password
// collapse into the same error.
func (s *AuthService) Login(rawPhone, password, ip string) (*postgres.User, token.Pair, error) {
	normalized := phone.Normalize(rawPhone)

	user, err := s.GetUserByPhone(normalized)
	if errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("auth: login attempt for unknown phone %s", normalized)
		return nil, token.Pair{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, token.Pair{}, err
	}

	if user.IsLocked() {
		log.Printf("auth: login attempt for locked account %s", user.ID)
		return nil, token.Pair{}, apperrors.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.RecordFailedLogin(user); err != nil {
			return nil, token.Pair{}, err
		}
		return nil, token.Pair{}, apperrors.ErrInvalidCredentials
	}

	if !user.IsPhoneVerified {
		return nil, token.Pair{}, apperrors.ErrPhoneNotVerified
	}

	if err := s.RecordSuccessfulLogin(user, ip); err != nil {
		return nil, token.Pair{}, err
	}

	pair, err := s.Tokens.IssuePair(user.ID, user.Phone, user.IsCoach)
	if err != nil {
		return nil, token.Pair{}, err
	}

	log.Printf("auth: user logged in %s", user.ID)
	return user, pair, nil
}

// ChangePassword swaps the password after re-checking the current one.
// A wrong current password counts as a failed login attempt.
func (s *AuthService) ChangePassword(user *postgres.User, oldPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		if err := s.RecordFailedLogin(user); err != nil {
			return err
		}
		return apperrors.ErrInvalidCredentials
	}

	if len(newPassword) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}
	if oldPassword == newPassword {
		return apperrors.ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(user).Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          nil,
		}).Error
	})
}

// UpdateProfileFields updates the mutable account fields.
func (s *AuthService) UpdateProfileFields(user *postgres.User, firstName, lastName, email *string) error {
	updates := map[string]interface{}{}
	if firstName != nil {
		updates["first_name"] = *firstName
	}
	if lastName != nil {
		updates["last_name"] = *lastName
	}
	if email != nil {
		updates["email"] = *email
	}
	if len(updates) == 0 {
		return nil
	}
	return s.DB.Model(user).Updates(updates).Error
}
