// Bearer-token authentication: RS256 JWTs verified against a JWKS
// fetched over HTTP and cached for a TTL.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// No example repo in the retrieval pack carries a JWT library, so
// github.com/golang-jwt/jwt/v5 is an ecosystem dependency rather than a
// pack-grounded one; see DESIGN.md.
package rpc

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Verifier checks bearer tokens against a JWKS, refetching it once
// jwksTTL has elapsed since the last fetch.
type Verifier struct {
	jwksURL string
	client  *http.Client

	mu    sync.Mutex
	keys  map[string]*rsa.PublicKey
	fetch time.Time
}

const jwksTTL = 10 * time.Minute

// NewVerifier builds a Verifier that fetches its key set from jwksURL.
func NewVerifier(jwksURL string) *Verifier {
	return &Verifier{jwksURL: jwksURL, client: &http.Client{Timeout: 5 * time.Second}}
}

type jwkSet struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) refresh() error {
	resp, err := v.client.Get(v.jwksURL)
	if err != nil {
		return fmt.Errorf("fetching jwks: %w", err)
	}
	defer resp.Body.Close()

	var set jwkSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("decoding jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := rsaPublicKey(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	v.keys = keys
	v.fetch = time.Now()
	return nil
}

func rsaPublicKey(nb64, eb64 string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nb64)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eb64)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func (v *Verifier) keyFor(kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keys == nil || time.Since(v.fetch) > jwksTTL {
		if err := v.refresh(); err != nil {
			return nil, err
		}
	}

	key, ok := v.keys[kid]
	if !ok {
		// key rotation can outrun the cache; force one retry
		if err := v.refresh(); err != nil {
			return nil, err
		}
		if key, ok = v.keys[kid]; !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
	}
	return key, nil
}

// Verify parses and validates an RS256 token, returning its claims.
func (v *Verifier) Verify(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != "RS256" {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		kid, _ := t.Header["kid"].(string)
		return v.keyFor(kid)
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", fmt.Errorf("no metadata in request")
	}
	auth := md.Get("authorization")
	if len(auth) == 0 {
		return "", fmt.Errorf("missing authorization header")
	}
	const prefix = "Bearer "
	if len(auth[0]) <= len(prefix) || auth[0][:len(prefix)] != prefix {
		return "", fmt.Errorf("malformed authorization header")
	}
	return auth[0][len(prefix):], nil
}

// streamAuthInterceptor rejects any stream whose bearer token does not
// verify against v.
func streamAuthInterceptor(v *Verifier) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		token, err := bearerToken(ss.Context())
		if err != nil {
			return status.Error(codes.Unauthenticated, err.Error())
		}
		if _, err := v.Verify(token); err != nil {
			return status.Error(codes.Unauthenticated, err.Error())
		}
		return handler(srv, ss)
	}
}
