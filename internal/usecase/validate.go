package usecase

import (
	"regexp"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateSignup(input SignupInput) []string {
	var errs []string
	if input.Name == "" {
		errs = append(errs, "Name is required")
	}
	if input.Email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(input.Email) {
		errs = append(errs, "Invalid email format")
	}
	if input.Phone == "" {
		errs = append(errs, "Phone is required")
	}
	switch input.Gender {
	case "":
		errs = append(errs, "Gender is required")
	case "male", "female", "other":
	default:
		errs = append(errs, "Gender must be male, female, or other")
	}
	if input.Password == "" {
		errs = append(errs, "Password is required")
	} else if len(input.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	return errs
}

func validateLogin(email, password string) []string {
	var errs []string
	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Invalid email format")
	}
	if password == "" {
		errs = append(errs, "Password is required")
	} else if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	return errs
}

func validateForgetPassword(email string) []string {
	var errs []string
	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Email is invalid")
	}
	return errs
}

func validateResetPassword(password, confirmPassword string) []string {
	var errs []string
	if password == "" {
		errs = append(errs, "Password is required")
	} else if len(password) < 6 {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if confirmPassword == "" {
		errs = append(errs, "Confirm Password is required")
	} else if password != confirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	return errs
}

func validCategoryGender(gender string) bool {
	switch gender {
	case entity.CategoryGenderMen, entity.CategoryGenderWomen, entity.CategoryGenderKids:
		return true
	}
	return false
}
