package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mi-raf/rule-look/internal/database"
	"github.com/mi-raf/rule-look/internal/models"
	"github.com/mi-raf/rule-look/internal/validation"
	"github.com/rs/zerolog/log"
)

const (
	promptLogout       = "로그아웃 하시겠습니까?"
	promptDeleteFirst  = "정말로 계정을 탈퇴하시겠습니까?\n\n모든 데이터가 삭제되며 복구할 수 없습니다."
	promptDeleteSecond = "마지막 확인입니다.\n계정을 탈퇴하시겠습니까?"

	// DeleteConfirmations is the number of answers account deletion needs.
	DeleteConfirmations = 2
)

func (c *Controller) loggedIn(ctx context.Context) bool {
	_, ok, err := c.prefs.Get(ctx, c.owner, database.KeyUserEmail)
	if err != nil {
		log.Error().Err(err).Str("owner", c.owner).Msg("can not read login state")
		return false
	}
	return ok
}

func (c *Controller) setPrefs(ctx context.Context, kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if err := c.prefs.Set(ctx, c.owner, kv[i], kv[i+1]); err != nil {
			return dbError(err, "can not save preference")
		}
	}
	return nil
}

func (c *Controller) Login(ctx context.Context, f validation.LoginForm) error {
	c.m.Lock()
	defer c.m.Unlock()
	if err := validation.ValidateLogin(f); err != nil {
		return err
	}
	if err := c.setPrefs(ctx, database.KeyUserEmail, f.Email); err != nil {
		return err
	}
	log.Info().Str("owner", c.owner).Msg("logged in")
	c.state.ActiveTab = models.TabHome
	c.show(models.PageHome)
	return nil
}

// Signup stores the profile fields and sends the user to the login screen.
func (c *Controller) Signup(ctx context.Context, f validation.SignupForm) error {
	c.m.Lock()
	defer c.m.Unlock()
	if err := validation.ValidateSignup(f, c.cat); err != nil {
		return err
	}
	if err := c.setPrefs(ctx, database.KeyUserName, f.Name, database.KeyMySchool, f.School); err != nil {
		return err
	}
	c.show(models.PageLogin)
	return nil
}

func (c *Controller) Logout(ctx context.Context, confirmed bool) error {
	c.m.Lock()
	defer c.m.Unlock()
	if !confirmed {
		return validation.ConfirmationRequired(promptLogout)
	}
	if err := c.prefs.Delete(ctx, c.owner, database.KeyUserEmail, database.KeyUserName); err != nil {
		return dbError(err, "can not logout")
	}
	c.show(models.PageLogin)
	return nil
}

// DeleteAccount needs two sequential confirmations. With fewer it returns the
// prompt for the next one and changes nothing.
func (c *Controller) DeleteAccount(ctx context.Context, confirmations int) error {
	c.m.Lock()
	defer c.m.Unlock()
	switch {
	case confirmations <= 0:
		return validation.ConfirmationRequired(promptDeleteFirst)
	case confirmations < DeleteConfirmations:
		return validation.ConfirmationRequired(promptDeleteSecond)
	}
	if err := c.prefs.Clear(ctx, c.owner); err != nil {
		return dbError(err, "can not delete account")
	}
	log.Info().Str("owner", c.owner).Msg("account deleted")
	c.show(models.PageLogin)
	return nil
}

func (c *Controller) EditProfile(ctx context.Context, f validation.ProfileForm) error {
	c.m.Lock()
	defer c.m.Unlock()
	if err := validation.ValidateProfile(f); err != nil {
		return err
	}
	err := c.setPrefs(ctx,
		database.KeyUserEmail, strings.TrimSpace(f.Email),
		database.KeyUserName, strings.TrimSpace(f.Name))
	if err != nil {
		return err
	}
	c.show(models.PageProfile)
	return nil
}

func (c *Controller) ChangeSchool(ctx context.Context, school string, confirmed bool) error {
	c.m.Lock()
	defer c.m.Unlock()
	current, _, err := c.prefs.Get(ctx, c.owner, database.KeyMySchool)
	if err != nil {
		return dbError(err, "can not read school")
	}
	if err := validation.ValidateSchoolChange(school, current, confirmed, c.cat); err != nil {
		return err
	}
	if err := c.setPrefs(ctx, database.KeyMySchool, school); err != nil {
		return err
	}
	c.show(models.PageProfile)
	return nil
}

// Profile reads the stored account values. Without a saved name the part
// of the email before '@' is shown.
func (c *Controller) Profile(ctx context.Context) (*models.Profile, error) {
	p := &models.Profile{}
	var err error
	var ok bool
	if p.Email, ok, err = c.prefs.Get(ctx, c.owner, database.KeyUserEmail); err != nil {
		return nil, dbError(err, "can not read profile")
	}
	p.LoggedIn = ok
	if p.Name, _, err = c.prefs.Get(ctx, c.owner, database.KeyUserName); err != nil {
		return nil, dbError(err, "can not read profile")
	}
	if p.School, _, err = c.prefs.Get(ctx, c.owner, database.KeyMySchool); err != nil {
		return nil, dbError(err, "can not read profile")
	}
	if p.Name == "" {
		p.Name, _, _ = strings.Cut(p.Email, "@")
	}
	if r, _ := utf8.DecodeRuneInString(p.Name); r != utf8.RuneError {
		p.AvatarLetter = string(unicode.ToUpper(r))
	}
	return p, nil
}
