package main

import "github.com/warehouse-crm/auth-service/cmd"

// @title                       Warehouse Auth API
// @version                     1.0
// @description                 Account lifecycle, sessions and role based access for the warehouse application.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cmd.Execute()
}
