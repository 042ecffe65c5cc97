package sync

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// LDAPConfig holds LDAP/Active Directory configuration for reading the
// directory's active user list.
type LDAPConfig struct {
	// Enabled indicates if the LDAP directory is enabled.
	Enabled bool `toml:"enabled"`
	// Host is the LDAP server hostname or IP address.
	Host string `toml:"host"`
	// Port is the LDAP server port (typically 389 for LDAP, 636 for LDAPS).
	Port int `toml:"port"`
	// UseSSL enables LDAPS (LDAP over SSL/TLS) on port 636.
	UseSSL bool `toml:"useSSL"`
	// UseTLS enables StartTLS to upgrade an LDAP connection to TLS.
	UseTLS bool `toml:"useTLS"`
	// SkipVerify skips TLS certificate verification (insecure, for testing only).
	SkipVerify bool `toml:"skipVerify"`
	// BindDN is the distinguished name to bind with for performing searches.
	BindDN string `toml:"bindDN"`
	// BindPassword is the password for the bind DN.
	BindPassword string `toml:"bindPassword"`
	// BaseDN is the base distinguished name for user searches.
	BaseDN string `toml:"baseDN"`
	// UserFilter is the LDAP filter selecting the active user entries
	// (e.g., "(&(objectClass=person)(!(shadowFlag=1)))").
	UserFilter string `toml:"userFilter"`
	// UserIDAttr is the LDAP attribute holding the stable identifier
	// (e.g., "entryUUID", "objectGUID"). The entry DN is used as a fallback.
	UserIDAttr string `toml:"userIDAttr"`
	// UsernameAttr is the LDAP attribute containing the username (e.g., "uid").
	UsernameAttr string `toml:"usernameAttr"`
	// EmailAttr is the LDAP attribute containing the email address (e.g., "mail").
	EmailAttr string `toml:"emailAttr"`
	// Timeout is the connection timeout in seconds.
	Timeout int `toml:"timeout"`
}

// LDAPReader reads the active user list from an LDAP directory. It is the
// identity reader used by the reconciliation engine in production.
type LDAPReader struct {
	config *LDAPConfig
}

// NewLDAPReader creates a new LDAP-backed identity reader.
func NewLDAPReader(config *LDAPConfig) (*LDAPReader, error) {
	if !config.Enabled {
		return nil, ErrLDAPDisabled
	}

	// Set defaults
	if config.UserFilter == "" {
		config.UserFilter = "(objectClass=person)"
	}

	if config.UserIDAttr == "" {
		config.UserIDAttr = "entryUUID"
	}

	if config.UsernameAttr == "" {
		config.UsernameAttr = "uid"
	}

	if config.EmailAttr == "" {
		config.EmailAttr = "mail"
	}

	if config.Timeout == 0 {
		config.Timeout = 10
	}

	return &LDAPReader{
		config: config,
	}, nil
}

// Connect establishes a connection to the LDAP server.
func (r *LDAPReader) Connect() (*ldap.Conn, error) {
	hostPort := net.JoinHostPort(r.config.Host, strconv.Itoa(r.config.Port))

	var ldapURL string
	if r.config.UseSSL {
		ldapURL = "ldaps://" + hostPort
	} else {
		ldapURL = "ldap://" + hostPort
	}

	// Configure TLS
	var tlsConfig *tls.Config
	if r.config.UseSSL || r.config.UseTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: r.config.SkipVerify, //nolint:gosec // skipping verifying tls is ok
			ServerName:         r.config.Host,
		}
	}

	conn, err := ldap.DialURL(ldapURL, ldap.DialWithTLSConfig(tlsConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}

	// Upgrade to TLS if requested (for non-SSL connections)
	if !r.config.UseSSL && r.config.UseTLS {
		if errStartTLS := conn.StartTLS(tlsConfig); errStartTLS != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close LDAP connection")
			}

			return nil, fmt.Errorf("failed to start TLS: %w", errStartTLS)
		}
	}

	if r.config.Timeout > 0 {
		conn.SetTimeout(time.Duration(r.config.Timeout) * time.Second)
	}

	return conn, nil
}

// ListActiveIdentities returns the full current set of active identities
// from the directory.
func (r *LDAPReader) ListActiveIdentities() ([]IdentityRecord, error) {
	conn, err := r.Connect()
	if err != nil {
		return nil, err
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close LDAP connection")
		}
	}()

	// Bind with service account
	if r.config.BindDN != "" {
		if err = conn.Bind(r.config.BindDN, r.config.BindPassword); err != nil {
			return nil, fmt.Errorf("failed to bind: %w", err)
		}
	}

	searchRequest := ldap.NewSearchRequest(
		r.config.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, // Size limit
		r.config.Timeout,
		false,
		r.config.UserFilter,
		[]string{
			r.config.UserIDAttr,
			r.config.UsernameAttr,
			r.config.EmailAttr,
			"dn",
		},
		nil,
	)

	searchResult, errSearch := conn.Search(searchRequest)
	if errSearch != nil {
		return nil, fmt.Errorf("failed to search: %w", errSearch)
	}

	identities := make([]IdentityRecord, 0, len(searchResult.Entries))

	for _, entry := range searchResult.Entries {
		record := r.entryToRecord(entry)
		if record.UserID == "" {
			log.Warn().Str("dn", entry.DN).Msg("skipping directory entry without a stable id")
			continue
		}

		identities = append(identities, record)
	}

	return identities, nil
}

// entryToRecord maps one directory entry to an identity record. The entry DN
// serves as the stable id when the configured attribute is absent.
func (r *LDAPReader) entryToRecord(entry *ldap.Entry) IdentityRecord {
	userID := entry.GetAttributeValue(r.config.UserIDAttr)
	if userID == "" {
		userID = entry.DN
	}

	return IdentityRecord{
		UserID:   userID,
		Email:    entry.GetAttributeValue(r.config.EmailAttr),
		UserName: entry.GetAttributeValue(r.config.UsernameAttr),
	}
}

// TestConnection tests the LDAP server connection and bind credentials.
// Returns nil if the connection and bind are successful.
func (r *LDAPReader) TestConnection() error {
	conn, err := r.Connect()
	if err != nil {
		return err
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close LDAP connection")
		}
	}()

	if r.config.BindDN != "" {
		if err := conn.Bind(r.config.BindDN, r.config.BindPassword); err != nil {
			return fmt.Errorf("bind failed: %w", err)
		}
	}

	return nil
}
