package controllers

import (
	"net/http"
	"strconv"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (uc *UserController) AuthenticateUser(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := uc.service.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "Usuario o contraseña inválidos")
		return
	}

	utils.Success(c, http.StatusOK, models.LoginResponse{
		Token:    token,
		Username: user.Username,
		Roles:    user.Roles,
	}, "Autenticación exitosa")
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var user models.UserModel
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	creado, err := uc.service.CreateUser(&user)
	if err != nil {
		responderError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, models.RegisterResponse{
		ID:       creado.Id,
		Username: creado.Username,
		Email:    creado.Email,
		Roles:    creado.Roles,
	}, "Usuario registrado exitosamente")
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.service.GetAllUsers()
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, users, "")
}

func (uc *UserController) GetUserByUsername(c *gin.Context) {
	user, err := uc.service.GetUserByUsername(c.Param("username"))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, user, "")
}

func (uc *UserController) UpdateRoles(c *gin.Context) {
	var body struct {
		Roles models.Roles `json:"roles"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := uc.service.UpdateRoles(c.Param("username"), body.Roles)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, user, "Roles actualizados exitosamente")
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Formato de ID inválido")
		return
	}

	if err := uc.service.DeleteUser(id); err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "Usuario eliminado exitosamente")
}
