package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/models"
	"welfare-center-api/src/utils"
)

// authorities per role, mirrored into access-token claims.
var roleAuthorities = map[string][]string{
	models.RoleSystemAdmin: {"ROLE_SYSTEM_ADMIN"},
	models.RoleAdmin:       {"ROLE_ADMIN"},
	models.RoleStaff:       {"ROLE_STAFF"},
	models.RoleUser:        {"ROLE_USER"},
}

func issueTokens(ctx context.Context, info models.UserInfo) (*models.LoginResponse, error) {
	accessToken, expiresAt, err := utils.GenerateAccessToken(info.ID, info.UserType, info.InstitutionID, info.Authorities)
	if err != nil {
		return nil, apperrors.Internal("failed to sign access token")
	}

	refreshToken, err := utils.GenerateRefreshToken(info.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to sign refresh token")
	}

	if err := utils.StoreRefreshToken(ctx, info.ID, refreshToken); err != nil {
		return nil, apperrors.Internal("failed to store refresh token")
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         info,
	}, nil
}

func lookupInstitution(ctx context.Context, id primitive.ObjectID) *models.Institution {
	var inst models.Institution
	if err := database.InstitutionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&inst); err != nil {
		return nil
	}
	return &inst
}

// loginGate rejects principals whose institution is gone or deactivated. A
// suspended institution locks out all of its admins and members at once.
func loginGate(inst *models.Institution) error {
	if inst == nil || !inst.IsActive {
		return apperrors.InvalidCredentials()
	}
	return nil
}

// LoginSystemAdmin authenticates a platform operator by email and password.
func LoginSystemAdmin(req models.SystemAdminLoginRequest) (*models.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var sysAdmin models.SystemAdmin
	err := database.SystemAdminCollection.FindOne(ctx, bson.M{"email": req.Email, "isActive": true}).Decode(&sysAdmin)
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}
	if !utils.CheckPassword(sysAdmin.Password, req.Password) {
		return nil, apperrors.InvalidCredentials()
	}

	touchLastLogin(ctx, database.SystemAdminCollection, sysAdmin.ID)

	return issueTokens(ctx, models.UserInfo{
		ID:          sysAdmin.ID.Hex(),
		UserType:    models.RoleSystemAdmin,
		Name:        sysAdmin.Name,
		Email:       sysAdmin.Email,
		Authorities: roleAuthorities[models.RoleSystemAdmin],
	})
}

// LoginAdmin authenticates an institution admin or staff member. Only APPROVED
// accounts may log in; every other rejection path returns the same 401.
func LoginAdmin(req models.AdminLoginRequest) (*models.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	institutionID, err := primitive.ObjectIDFromHex(req.InstitutionID)
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	inst := lookupInstitution(ctx, institutionID)
	if err := loginGate(inst); err != nil {
		return nil, err
	}

	var admin models.Admin
	err = database.AdminCollection.FindOne(ctx, bson.M{
		"institutionId": institutionID,
		"email":         req.Email,
		"isActive":      true,
	}).Decode(&admin)
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}
	if admin.Status != models.StatusApproved {
		return nil, apperrors.InvalidCredentials()
	}
	if !utils.CheckPassword(admin.Password, req.Password) {
		return nil, apperrors.InvalidCredentials()
	}

	touchLastLogin(ctx, database.AdminCollection, admin.ID)

	return issueTokens(ctx, models.UserInfo{
		ID:              admin.ID.Hex(),
		UserType:        admin.Role,
		Name:            admin.Name,
		Email:           admin.Email,
		InstitutionID:   admin.InstitutionID.Hex(),
		InstitutionName: inst.Name,
		Authorities:     roleAuthorities[admin.Role],
	})
}

// LoginUser authenticates a member either by username+password or by a one-shot
// temporary login code. Exactly one mode must be supplied.
func LoginUser(req models.UserLoginRequest) (*models.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hasCredentials := req.Username != "" && req.Password != ""
	hasCode := req.LoginCode != ""
	if hasCredentials == hasCode {
		return nil, apperrors.Invalid("VALIDATION_FAILED", "provide either username and password or a login code")
	}

	var user models.User
	if hasCode {
		// Temporary code first: one-shot, Redis-backed. Falls back to the
		// persistent per-member code stored on the account.
		if userID, err := utils.ConsumeLoginCode(ctx, req.LoginCode); err == nil {
			oid, hexErr := primitive.ObjectIDFromHex(userID)
			if hexErr != nil {
				return nil, apperrors.InvalidCredentials()
			}
			if err := database.UserCollection.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&user); err != nil {
				return nil, apperrors.InvalidCredentials()
			}
		} else if err := database.UserCollection.FindOne(ctx, bson.M{"loginCode": req.LoginCode, "isActive": true}).Decode(&user); err != nil {
			return nil, apperrors.InvalidCredentials()
		}
	} else {
		err := database.UserCollection.FindOne(ctx, bson.M{"username": req.Username, "isActive": true}).Decode(&user)
		if err != nil {
			return nil, apperrors.InvalidCredentials()
		}
		if !utils.CheckPassword(user.Password, req.Password) {
			return nil, apperrors.InvalidCredentials()
		}
	}

	inst := lookupInstitution(ctx, user.InstitutionID)
	if err := loginGate(inst); err != nil {
		return nil, err
	}

	touchLastLogin(ctx, database.UserCollection, user.ID)

	return issueTokens(ctx, models.UserInfo{
		ID:              user.ID.Hex(),
		UserType:        models.RoleUser,
		Name:            user.Name,
		InstitutionID:   user.InstitutionID.Hex(),
		InstitutionName: inst.Name,
		Authorities:     roleAuthorities[models.RoleUser],
	})
}

// Refresh validates a refresh token, re-derives the principal from storage and
// issues a fresh access token. The refresh token carries only the subject id,
// so a role or status change since login takes effect here.
func Refresh(req models.RefreshTokenRequest) (*models.TokenResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subjectID, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.InvalidToken("refresh token is invalid or expired")
	}
	if err := utils.ValidateRefreshToken(ctx, subjectID, req.RefreshToken); err != nil {
		return nil, apperrors.InvalidToken("refresh token has been revoked")
	}

	info, err := resolvePrincipal(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := utils.GenerateAccessToken(info.ID, info.UserType, info.InstitutionID, info.Authorities)
	if err != nil {
		return nil, apperrors.Internal("failed to sign access token")
	}
	return &models.TokenResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout revokes the subject's stored refresh token. The access token stays
// valid until it expires.
func Logout(req models.RefreshTokenRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subjectID, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return apperrors.InvalidToken("refresh token is invalid or expired")
	}
	return utils.DeleteRefreshToken(ctx, subjectID)
}

// resolvePrincipal probes the three account collections for the subject id and
// rebuilds the claims. An account that was suspended or deactivated in the
// meantime can no longer refresh.
func resolvePrincipal(ctx context.Context, subjectID string) (*models.UserInfo, error) {
	oid, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return nil, apperrors.InvalidToken("refresh token subject is malformed")
	}

	var sysAdmin models.SystemAdmin
	if err := database.SystemAdminCollection.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&sysAdmin); err == nil {
		return &models.UserInfo{
			ID:          sysAdmin.ID.Hex(),
			UserType:    models.RoleSystemAdmin,
			Name:        sysAdmin.Name,
			Email:       sysAdmin.Email,
			Authorities: roleAuthorities[models.RoleSystemAdmin],
		}, nil
	}

	var admin models.Admin
	if err := database.AdminCollection.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&admin); err == nil {
		if admin.Status != models.StatusApproved {
			return nil, apperrors.InvalidToken("account is not in an active status")
		}
		if loginGate(lookupInstitution(ctx, admin.InstitutionID)) != nil {
			return nil, apperrors.InvalidToken("institution is not active")
		}
		return &models.UserInfo{
			ID:            admin.ID.Hex(),
			UserType:      admin.Role,
			Name:          admin.Name,
			Email:         admin.Email,
			InstitutionID: admin.InstitutionID.Hex(),
			Authorities:   roleAuthorities[admin.Role],
		}, nil
	}

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": oid, "isActive": true}).Decode(&user); err == nil {
		if loginGate(lookupInstitution(ctx, user.InstitutionID)) != nil {
			return nil, apperrors.InvalidToken("institution is not active")
		}
		return &models.UserInfo{
			ID:            user.ID.Hex(),
			UserType:      models.RoleUser,
			Name:          user.Name,
			InstitutionID: user.InstitutionID.Hex(),
			Authorities:   roleAuthorities[models.RoleUser],
		}, nil
	}

	return nil, apperrors.InvalidToken("account no longer exists")
}

func touchLastLogin(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) {
	now := time.Now()
	coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastLogin": now}})
}
