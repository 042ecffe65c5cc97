// GoAuthZ-Admin manages the authorization data of multi-tenant applications:
// users, the roles assigned to them and their tenant membership. It keeps the
// local authorization store in step with an external authentication directory
// by computing reconciliation change-sets and applying them after operator
// review. The application uses gorm for data persistence, go-ldap for reading
// the directory and Fiber for the admin API.
package main
