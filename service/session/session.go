package session

import (
	"context"
	"time"

	"lending/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/golang-jwt/jwt"
	"golang.org/x/sync/singleflight"
)

// New new session verifying bearer tokens with the shared secret
func New(secret string, capacity int) core.Session {
	var s core.Session = &session{
		secret: []byte(secret),
		sf:     &singleflight.Group{},
	}

	if capacity > 0 {
		s = &cacheSession{
			Session: s,
			tokens:  gcache.New(capacity).LRU().Build(),
		}
	}

	return s
}

type session struct {
	secret []byte
	sf     *singleflight.Group
}

func (s *session) Login(ctx context.Context, accessToken string) (string, error) {
	actor, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		var claim jwt.StandardClaims
		token, err := jwt.ParseWithClaims(accessToken, &claim, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, core.ErrUnauthorized
			}

			return s.secret, nil
		})
		if err != nil || !token.Valid {
			return nil, core.ErrUnauthorized
		}

		if !govalidator.IsUUID(claim.Subject) {
			return nil, core.ErrUnauthorized
		}

		return claim.Subject, nil
	})

	if err != nil {
		return "", err
	}

	return actor.(string), nil
}

type cacheSession struct {
	core.Session
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (string, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		if actor, ok := v.(string); ok {
			return actor, nil
		}
	}

	actor, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return "", err
	}

	_ = s.tokens.SetWithExpire(accessToken, actor, time.Minute)
	return actor, nil
}

// Issue signs a token for actor, valid for exp. Used by the admin cli and by
// clients holding the shared secret.
func Issue(secret, actor string, exp time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   actor,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(exp).Unix(),
	})

	return token.SignedString([]byte(secret))
}
