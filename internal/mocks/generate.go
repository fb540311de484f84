package mocks

//go:generate mockery --name ForecastStore --srcpkg github.com/tempguess/tempguess/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
