package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RatingClient --dir ../domain/club --output domain/club --outpkg clubmock --filename rating_client_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RoleResolver --dir ../domain/club --output domain/club --outpkg clubmock --filename role_resolver_mock.go
