package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSecurityConfig(t *testing.T) {
	// Create a temporary directory for test files
	tmpDir, err := os.MkdirTemp("", "security-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	tests := []struct {
		name        string
		configYAML  string
		expectError bool
		errorMsg    string
		validate    func(*testing.T, *SecurityConfig)
	}{
		{
			name: "valid config",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 12
      weak_passwords:
        - "admin"
        - "password"
  public_endpoints:
    - "/health"
    - "/metrics"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 24
`,
			expectError: false,
			validate: func(t *testing.T, config *SecurityConfig) {
				if config.Security.Auth.Provider != "repository" {
					t.Errorf("expected provider 'repository', got '%s'", config.Security.Auth.Provider)
				}
				if config.Security.Auth.Password.MinPasswordLength != 12 {
					t.Errorf("expected min_password_length 12, got %d", config.Security.Auth.Password.MinPasswordLength)
				}
				if len(config.Security.Auth.Password.WeakPasswords) != 2 {
					t.Errorf("expected 2 weak passwords, got %d", len(config.Security.Auth.Password.WeakPasswords))
				}
				if len(config.Security.PublicEndpoints) != 2 {
					t.Errorf("expected 2 public endpoints, got %d", len(config.Security.PublicEndpoints))
				}
				if config.Security.JWT.SecretEnv != "JWT_SECRET" {
					t.Errorf("expected secret_env 'JWT_SECRET', got '%s'", config.Security.JWT.SecretEnv)
				}
				if config.Security.JWT.ExpiryHours != 24 {
					t.Errorf("expected expiry_hours 24, got %d", config.Security.JWT.ExpiryHours)
				}
			},
		},
		{
			name: "missing provider",
			configYAML: `security:
  auth:
    password:
      min_password_length: 12
  public_endpoints:
    - "/health"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 24
`,
			expectError: true,
			errorMsg:    "auth provider is required",
		},
		{
			name: "zero min_password_length",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 0
  public_endpoints:
    - "/health"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 24
`,
			expectError: true,
			errorMsg:    "min_password_length must be positive",
		},
		{
			name: "min_password_length too short",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 6
  public_endpoints:
    - "/health"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 24
`,
			expectError: true,
			errorMsg:    "min_password_length must be at least 8",
		},
		{
			name: "missing jwt secret_env",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 12
  public_endpoints:
    - "/health"
  jwt:
    expiry_hours: 24
`,
			expectError: true,
			errorMsg:    "jwt secret_env is required",
		},
		{
			name: "zero jwt expiry_hours",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 12
  public_endpoints:
    - "/health"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 0
`,
			expectError: true,
			errorMsg:    "jwt expiry_hours must be positive",
		},
		{
			name: "negative jwt expiry_hours",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 12
  public_endpoints:
    - "/health"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: -1
`,
			expectError: true,
			errorMsg:    "jwt expiry_hours must be positive",
		},
		{
			name: "empty weak passwords",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 12
      weak_passwords: []
  public_endpoints:
    - "/health"
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 24
`,
			expectError: false,
			validate: func(t *testing.T, config *SecurityConfig) {
				if len(config.Security.Auth.Password.WeakPasswords) != 0 {
					t.Errorf("expected 0 weak passwords, got %d", len(config.Security.Auth.Password.WeakPasswords))
				}
			},
		},
		{
			name: "empty public endpoints",
			configYAML: `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 12
  public_endpoints: []
  jwt:
    secret_env: "JWT_SECRET"
    expiry_hours: 24
`,
			expectError: false,
			validate: func(t *testing.T, config *SecurityConfig) {
				if len(config.Security.PublicEndpoints) != 0 {
					t.Errorf("expected 0 public endpoints, got %d", len(config.Security.PublicEndpoints))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			configPath := filepath.Join(tmpDir, "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.configYAML), 0644); err != nil {
				t.Fatal(err)
			}

			// Load config
			config, err := LoadSecurityConfig(configPath)

			if tt.expectError {
				if err == nil {
					t.Error("expected error but got nil")
					return
				}
				if tt.errorMsg != "" && err.Error() != "config validation failed: "+tt.errorMsg {
					t.Errorf("expected error message containing '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("expected no error but got: %v", err)
					return
				}

				if tt.validate != nil {
					tt.validate(t, config)
				}
			}
		})
	}
}

func TestLoadSecurityConfig_FileNotFound(t *testing.T) {
	_, err := LoadSecurityConfig("/nonexistent/path/config.yaml")

	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadSecurityConfig_InvalidYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "security-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	configPath := filepath.Join(tmpDir, "invalid.yaml")
	invalidYAML := `
security:
  auth:
    provider: "repository"
    password:
      min_password_length: invalid
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatal(err)
	}

	_, err = LoadSecurityConfig(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSecurityConfig_Getters(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "security-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	configYAML := `security:
  auth:
    provider: "repository"
    password:
      min_password_length: 15
      weak_passwords:
        - "admin"
        - "password"
        - "123456"
  public_endpoints:
    - "/health"
    - "/ready"
    - "/metrics"
  jwt:
    secret_env: "MY_JWT_SECRET"
    expiry_hours: 48
`

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadSecurityConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}

	// Test GetAuthProvider
	if config.GetAuthProvider() != "repository" {
		t.Errorf("expected provider 'repository', got '%s'", config.GetAuthProvider())
	}

	// Test GetMinPasswordLength
	if config.GetMinPasswordLength() != 15 {
		t.Errorf("expected min password length 15, got %d", config.GetMinPasswordLength())
	}

	// Test GetWeakPasswords
	weakPasswords := config.GetWeakPasswords()
	if len(weakPasswords) != 3 {
		t.Errorf("expected 3 weak passwords, got %d", len(weakPasswords))
	}
	if weakPasswords[0] != "admin" {
		t.Errorf("expected first weak password to be 'admin', got '%s'", weakPasswords[0])
	}

	// Test GetPublicEndpoints
	publicEndpoints := config.GetPublicEndpoints()
	if len(publicEndpoints) != 3 {
		t.Errorf("expected 3 public endpoints, got %d", len(publicEndpoints))
	}
	if publicEndpoints[0] != "/health" {
		t.Errorf("expected first endpoint to be '/health', got '%s'", publicEndpoints[0])
	}

	// Test GetJWTSecretEnv
	if config.GetJWTSecretEnv() != "MY_JWT_SECRET" {
		t.Errorf("expected secret env 'MY_JWT_SECRET', got '%s'", config.GetJWTSecretEnv())
	}

	// Test GetJWTExpiryHours
	if config.GetJWTExpiryHours() != 48 {
		t.Errorf("expected expiry hours 48, got %d", config.GetJWTExpiryHours())
	}
}

func TestValidateSecurityConfig(t *testing.T) {
	valid := func() *SecurityConfig {
		var cfg SecurityConfig
		cfg.Security.Auth.Provider = "repository"
		cfg.Security.Auth.Password.MinPasswordLength = 12
		cfg.Security.JWT.SecretEnv = "JWT_SECRET"
		cfg.Security.JWT.ExpiryHours = 24
		return &cfg
	}

	if err := validateSecurityConfig(valid()); err != nil {
		t.Errorf("valid config: %v", err)
	}

	// Password rules only apply to the repository provider.
	cfg := valid()
	cfg.Security.Auth.Provider = "oauth"
	cfg.Security.Auth.Password.MinPasswordLength = 0
	if err := validateSecurityConfig(cfg); err != nil {
		t.Errorf("oauth provider: %v", err)
	}

	cfg = valid()
	cfg.Security.Auth.Password.MinPasswordLength = 6
	if err := validateSecurityConfig(cfg); err == nil {
		t.Error("expected error for short min_password_length")
	}
}
