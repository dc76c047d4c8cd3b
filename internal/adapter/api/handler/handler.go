package handler

import (
	"waypost/internal/usecase"
)

var (
	serviceHandler      *ServiceHandler
	walletHandler       *WalletHandler
	verificationHandler *VerificationHandler
	tokenHandler        *TokenHandler
)

func Setup(
	serviceUseCase *usecase.ServiceUseCase,
	walletUseCase *usecase.WalletUseCase,
	verificationUseCase *usecase.VerificationUseCase,
) {
	serviceHandler = NewServiceHandler(serviceUseCase)
	walletHandler = NewWalletHandler(walletUseCase)
	verificationHandler = NewVerificationHandler(verificationUseCase)
	tokenHandler = NewTokenHandler(serviceUseCase)
}

func GetServiceHandler() *ServiceHandler {
	return serviceHandler
}

func GetWalletHandler() *WalletHandler {
	return walletHandler
}

func GetVerificationHandler() *VerificationHandler {
	return verificationHandler
}

func GetTokenHandler() *TokenHandler {
	return tokenHandler
}
